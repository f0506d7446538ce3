package drafter

import (
	"testing"

	"github.com/alexanderramin/plantmap/internal/domain"
	"github.com/alexanderramin/plantmap/internal/zone"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func apply(t *testing.T, s State, events ...Event) (State, Outcome) {
	t.Helper()
	var out Outcome
	for _, ev := range events {
		var err error
		s, out, err = s.Apply(ev)
		require.NoError(t, err)
	}
	return s, out
}

func armed(t *testing.T) State {
	t.Helper()
	s, _ := apply(t, State{}, Arm{Role: domain.RoleAdmin})
	require.True(t, s.Armed)
	return s
}

func TestApply_SmallDragDisarmsWithoutDraft(t *testing.T) {
	s, out := apply(t, armed(t),
		PointerDown{At: Point{10, 10}},
		PointerMove{At: Point{30, 15}},
		PointerUp{At: Point{40, 20}},
	)

	assert.Equal(t, Disarmed, out.Kind)
	assert.Equal(t, Idle, s.Phase)
	assert.False(t, s.Armed)
	assert.False(t, s.Pending())
}

func TestApply_LargeDragCreatesDraft(t *testing.T) {
	s, out := apply(t, armed(t),
		PointerDown{At: Point{10, 10}},
		PointerUp{At: Point{120, 80}},
	)

	require.Equal(t, Drafted, out.Kind)
	assert.Equal(t, PendingMetadata, s.Phase)
	assert.Equal(t, domain.Bounds{X: 10, Y: 10, Width: 110, Height: 70}, s.Draft.Bounds)
	assert.True(t, s.Draft.Clickable)
	assert.Empty(t, s.Draft.NavigationTarget)
	assert.Nil(t, s.Editing)
}

func TestApply_ReverseDragIsNormalized(t *testing.T) {
	s, _ := apply(t, armed(t),
		PointerDown{At: Point{300, 200}},
		PointerUp{At: Point{100, 50}},
	)
	assert.Equal(t, domain.Bounds{X: 100, Y: 50, Width: 200, Height: 150}, s.Draft.Bounds)
}

func TestApply_ThresholdIsExclusive(t *testing.T) {
	s, out := apply(t, armed(t),
		PointerDown{At: Point{0, 0}},
		PointerUp{At: Point{50, 100}},
	)
	assert.Equal(t, Disarmed, out.Kind)
	assert.Equal(t, Idle, s.Phase)

	s, out = apply(t, armed(t),
		PointerDown{At: Point{0, 0}},
		PointerUp{At: Point{100, 30}},
	)
	assert.Equal(t, Disarmed, out.Kind)
	assert.Equal(t, Idle, s.Phase)
}

func TestApply_EngineerCannotArm(t *testing.T) {
	s, _ := apply(t, State{}, Arm{Role: domain.RoleEngineer}, PointerDown{At: Point{1, 1}})
	assert.False(t, s.Armed)
	assert.Equal(t, Idle, s.Phase)
}

func TestApply_PointerIgnoredWhenDisarmed(t *testing.T) {
	s, out := apply(t, State{}, PointerDown{At: Point{1, 1}}, PointerUp{At: Point{300, 300}})
	assert.Equal(t, NoOutcome, out.Kind)
	assert.Equal(t, State{}, s)
}

func TestApply_PreviewFollowsPointer(t *testing.T) {
	s, _ := apply(t, armed(t), PointerDown{At: Point{20, 20}}, PointerMove{At: Point{5, 60}})

	b, ok := s.Preview()
	require.True(t, ok)
	assert.Equal(t, domain.Bounds{X: 5, Y: 20, Width: 15, Height: 40}, b)

	_, ok = State{}.Preview()
	assert.False(t, ok)
}

func TestApply_ConfirmCommitsAndDisarms(t *testing.T) {
	s, _ := apply(t, armed(t), PointerDown{At: Point{10, 10}}, PointerUp{At: Point{120, 80}})

	s, out := apply(t, s, Confirm{Name: "  Paint Shop ", Clickable: false, NavigationTarget: "paint"})

	require.Equal(t, Committed, out.Kind)
	assert.Equal(t, "Paint Shop", out.Zone.Name)
	assert.False(t, out.Zone.Clickable)
	assert.Empty(t, out.Zone.NavigationTarget, "display-only zones drop their target")
	assert.Equal(t, domain.Bounds{X: 10, Y: 10, Width: 110, Height: 70}, out.Zone.Bounds)
	assert.Nil(t, out.Target)
	assert.Equal(t, State{}, s)
}

func TestApply_ConfirmWithoutNameKeepsDraft(t *testing.T) {
	pending, _ := apply(t, armed(t), PointerDown{At: Point{10, 10}}, PointerUp{At: Point{120, 80}})

	s, out, err := pending.Apply(Confirm{Name: "   ", Clickable: true})
	require.ErrorIs(t, err, domain.ErrNameRequired)
	assert.Equal(t, NoOutcome, out.Kind)
	assert.Equal(t, pending, s)
}

func TestApply_CancelDiscardsDraft(t *testing.T) {
	s, _ := apply(t, armed(t), PointerDown{At: Point{10, 10}}, PointerUp{At: Point{120, 80}})

	s, out := apply(t, s, Cancel{})
	assert.Equal(t, Discarded, out.Kind)
	assert.Equal(t, State{}, s)
}

func TestApply_OnlyOneDraftAtATime(t *testing.T) {
	s, _ := apply(t, armed(t), PointerDown{At: Point{10, 10}}, PointerUp{At: Point{120, 80}})
	draft := s.Draft

	s, _ = apply(t, s, PointerDown{At: Point{200, 200}}, PointerUp{At: Point{400, 400}})
	assert.Equal(t, PendingMetadata, s.Phase)
	assert.Equal(t, draft, s.Draft)
}

func TestApply_BeginEditCarriesTarget(t *testing.T) {
	existing := domain.Zone{
		Name:             "Assembly Line A",
		Bounds:           domain.Bounds{X: 200, Y: 150, Width: 300, Height: 100},
		Clickable:        true,
		NavigationTarget: "assembly-a",
	}
	target := zone.Target{BuiltIn: true, OriginalName: "Assembly Line A"}

	s, out := apply(t, State{}, BeginEdit{Target: target, Zone: existing})
	require.Equal(t, Drafted, out.Kind)
	require.NotNil(t, s.Editing)

	_, out = apply(t, s, Confirm{Name: "Line A", Clickable: true, NavigationTarget: "assembly-a"})
	require.Equal(t, Committed, out.Kind)
	require.NotNil(t, out.Target)
	assert.Equal(t, target, *out.Target)
	assert.Equal(t, existing.Bounds, out.Zone.Bounds)
	assert.Equal(t, "Line A", out.Zone.Name)
}
