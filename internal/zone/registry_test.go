package zone

import (
	"fmt"
	"math/rand"
	"testing"

	"github.com/alexanderramin/plantmap/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testZone(name string, clickable bool) domain.Zone {
	return domain.Zone{
		Name:      name,
		Bounds:    domain.Bounds{X: 10, Y: 10, Width: 100, Height: 60},
		Clickable: clickable,
	}
}

func TestResolve_EmptyLogReturnsCatalog(t *testing.T) {
	c := BaseCatalog()
	zones := Resolve(c, NewLog())

	require.Len(t, zones, 3)
	assert.True(t, zones["Assembly Line A"].Clickable)
	assert.Equal(t, "assembly-a", zones["Assembly Line A"].NavigationTarget)
	assert.False(t, zones["Assembly Line B"].Clickable)
	assert.Contains(t, zones, "Quality Control")
}

func TestResolve_ModifyRenamesBaseZone(t *testing.T) {
	c := BaseCatalog()
	l := NewLog().ModifyBase("Assembly Line A", domain.Zone{
		Name:      "Line A",
		Bounds:    domain.Bounds{X: 200, Y: 150, Width: 300, Height: 100},
		Clickable: false,
	})

	zones := Resolve(c, l)

	require.Contains(t, zones, "Line A")
	assert.False(t, zones["Line A"].Clickable)
	assert.NotContains(t, zones, "Assembly Line A")
	assert.Len(t, zones, 3)
}

func TestResolve_DeleteWinsOverModifyInAnyOrder(t *testing.T) {
	c := BaseCatalog()
	replacement := testZone("Renamed QC", true)

	modifyThenDelete := NewLog(
		domain.ModifyBaseZone{OriginalName: "Quality Control", Replacement: replacement},
		domain.DeleteBaseZone{OriginalName: "Quality Control"},
	)
	deleteThenModify := NewLog(
		domain.DeleteBaseZone{OriginalName: "Quality Control"},
		domain.ModifyBaseZone{OriginalName: "Quality Control", Replacement: replacement},
	)

	for name, l := range map[string]Log{"modify first": modifyThenDelete, "delete first": deleteThenModify} {
		t.Run(name, func(t *testing.T) {
			zones := Resolve(c, l)
			assert.NotContains(t, zones, "Quality Control")
			assert.NotContains(t, zones, "Renamed QC")
		})
	}
}

func TestResolve_AddZoneShadowedByDeleteMarker(t *testing.T) {
	c := BaseCatalog()
	l := NewLog(
		domain.AddZone{ID: "z1", Zone: testZone("Paint Shop", true)},
		domain.AddZone{ID: "z2", Zone: testZone("Assembly Line B", false)},
		domain.DeleteBaseZone{OriginalName: "Assembly Line B"},
	)

	zones := Resolve(c, l)

	assert.Contains(t, zones, "Paint Shop")
	assert.NotContains(t, zones, "Assembly Line B")
}

func TestResolve_DoesNotMutateCatalog(t *testing.T) {
	c := BaseCatalog()
	before := c.Zones()

	l := NewLog().
		ModifyBase("Assembly Line A", testZone("Line A", false)).
		DeleteBase("Quality Control")
	_ = Resolve(c, l)
	_ = ListManageable(c, l)

	assert.Equal(t, before, c.Zones())
}

// TestResolve_Deterministic property-tests that resolving the same log twice
// yields identical maps.
func TestResolve_Deterministic(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	c := BaseCatalog()
	baseNames := []string{"Assembly Line A", "Assembly Line B", "Quality Control"}

	for trial := 0; trial < 200; trial++ {
		var ops []domain.OverlayOp
		n := rng.Intn(8)
		for i := 0; i < n; i++ {
			base := baseNames[rng.Intn(len(baseNames))]
			switch rng.Intn(3) {
			case 0:
				ops = append(ops, domain.AddZone{
					ID:   fmt.Sprintf("add-%d-%d", trial, i),
					Zone: testZone(fmt.Sprintf("Zone %d", rng.Intn(4)), rng.Intn(2) == 0),
				})
			case 1:
				ops = append(ops, domain.ModifyBaseZone{
					OriginalName: base,
					Replacement:  testZone(fmt.Sprintf("%s v%d", base, rng.Intn(3)), rng.Intn(2) == 0),
				})
			default:
				ops = append(ops, domain.DeleteBaseZone{OriginalName: base})
			}
		}
		l := NewLog(ops...)

		first := Resolve(c, l)
		second := Resolve(c, l)
		assert.Equal(t, first, second, "trial %d: resolve must be deterministic", trial)

		for name := range l.Deleted() {
			assert.NotContains(t, first, name, "trial %d: deleted base zone %q must not resolve", trial, name)
		}
	}
}

func TestListManageable_TagsProvenance(t *testing.T) {
	c := BaseCatalog()
	l := NewLog().
		ModifyBase("Assembly Line A", testZone("Line A", true)).
		DeleteBase("Quality Control").
		Add("custom-1", testZone("Paint Shop", false))

	rows := ListManageable(c, l)

	require.Len(t, rows, 3)

	assert.Equal(t, "Line A", rows[0].Name)
	assert.True(t, rows[0].IsBuiltIn)
	assert.True(t, rows[0].IsModifiedBuiltIn)
	assert.Equal(t, "Assembly Line A", rows[0].OriginalName)

	assert.Equal(t, "Assembly Line B", rows[1].Name)
	assert.True(t, rows[1].IsBuiltIn)
	assert.False(t, rows[1].IsModifiedBuiltIn)

	assert.Equal(t, "Paint Shop", rows[2].Name)
	assert.False(t, rows[2].IsBuiltIn)
	assert.Equal(t, "custom-1", rows[2].ID)
}

func TestNameTaken_IgnoresSelf(t *testing.T) {
	c := BaseCatalog()
	l := NewLog().Add("custom-1", testZone("Paint Shop", false))

	assert.True(t, NameTaken(c, l, "Paint Shop", nil))
	assert.False(t, NameTaken(c, l, "Paint Shop", &Target{ID: "custom-1"}))
	assert.True(t, NameTaken(c, l, "Quality Control", &Target{ID: "custom-1"}))
	assert.False(t, NameTaken(c, l, "Quality Control", &Target{BuiltIn: true, OriginalName: "Quality Control"}))
	assert.False(t, NameTaken(c, l, "Warehouse", nil))
}

func TestNameTaken_CatalogNamesStayReserved(t *testing.T) {
	c := BaseCatalog()
	l := NewLog().
		ModifyBase("Assembly Line A", testZone("Line A", true)).
		DeleteBase("Quality Control").
		Add("custom-1", testZone("Paint Shop", false))

	assert.True(t, NameTaken(c, l, "Assembly Line A", nil), "renamed base zone keeps its catalog name")
	assert.True(t, NameTaken(c, l, "Quality Control", nil), "deleted base zone keeps its catalog name")
	assert.True(t, NameTaken(c, l, "Quality Control", &Target{ID: "custom-1"}))
	assert.True(t, NameTaken(c, l, "Quality Control", &Target{BuiltIn: true, OriginalName: "Assembly Line A"}))

	assert.False(t, NameTaken(c, l, "Assembly Line A", &Target{BuiltIn: true, OriginalName: "Assembly Line A"}),
		"a base zone may take its catalog name back")
}

func TestFind_ByDisplayedName(t *testing.T) {
	c := BaseCatalog()
	rows := ListManageable(c, NewLog().ModifyBase("Assembly Line B", testZone("Line B", false)))

	row, ok := Find(rows, "Line B")
	require.True(t, ok)
	assert.Equal(t, "Assembly Line B", row.OriginalName)

	_, ok = Find(rows, "Assembly Line B")
	assert.False(t, ok, "a renamed base zone is listed under its new name")
}

func TestAt_ReturnsContainingZone(t *testing.T) {
	zones := Resolve(BaseCatalog(), NewLog())

	z, ok := At(zones, 250, 200)
	require.True(t, ok)
	assert.Equal(t, "Assembly Line A", z.Name)

	_, ok = At(zones, 5, 5)
	assert.False(t, ok)
}

func TestLookup_ByTarget(t *testing.T) {
	c := BaseCatalog()
	l := NewLog().Add("z-1", testZone("Paint Shop", true)).DeleteBase("Quality Control")

	row, ok := Lookup(c, l, Target{ID: "z-1"})
	require.True(t, ok)
	assert.Equal(t, "Paint Shop", row.Name)

	row, ok = Lookup(c, l, Target{BuiltIn: true, OriginalName: "Assembly Line B"})
	require.True(t, ok)
	assert.True(t, row.IsBuiltIn)

	_, ok = Lookup(c, l, Target{BuiltIn: true, OriginalName: "Quality Control"})
	assert.False(t, ok, "deleted base zones cannot be targeted")

	_, ok = Lookup(c, l, Target{ID: "z-2"})
	assert.False(t, ok)
}
