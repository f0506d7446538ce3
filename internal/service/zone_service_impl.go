package service

import (
	"context"
	"fmt"
	"time"

	"github.com/alexanderramin/plantmap/internal/app"
	"github.com/alexanderramin/plantmap/internal/db"
	"github.com/alexanderramin/plantmap/internal/domain"
	"github.com/alexanderramin/plantmap/internal/repository"
	"github.com/alexanderramin/plantmap/internal/zone"
	"github.com/google/uuid"
)

type zoneService struct {
	catalog  zone.Catalog
	overlays repository.OverlayRepo
	uow      db.UnitOfWork
	notifier app.Notifier
	now      app.Clock
	observer UseCaseObserver
}

// NewZoneService builds the zone editor over a fixed catalog. The catalog
// is never written; every edit lands in the overlay log.
func NewZoneService(
	catalog zone.Catalog,
	overlays repository.OverlayRepo,
	uow db.UnitOfWork,
	notifier app.Notifier,
	now app.Clock,
	observers ...UseCaseObserver,
) ZoneService {
	if now == nil {
		now = time.Now
	}
	return &zoneService{
		catalog:  catalog,
		overlays: overlays,
		uow:      uow,
		notifier: notifier,
		now:      now,
		observer: useCaseObserverOrNoop(observers),
	}
}

func (s *zoneService) Catalog() zone.Catalog { return s.catalog }

func (s *zoneService) Log(ctx context.Context) (zone.Log, error) {
	return s.overlays.Load(ctx)
}

func (s *zoneService) Effective(ctx context.Context) (map[string]domain.Zone, error) {
	l, err := s.overlays.Load(ctx)
	if err != nil {
		return nil, err
	}
	return zone.Resolve(s.catalog, l), nil
}

func (s *zoneService) Manageable(ctx context.Context) ([]zone.ManagedZone, error) {
	l, err := s.overlays.Load(ctx)
	if err != nil {
		return nil, err
	}
	return zone.ListManageable(s.catalog, l), nil
}

func (s *zoneService) CreateZone(ctx context.Context, role domain.Role, z domain.Zone) (created zone.ManagedZone, err error) {
	fields := map[string]any{"zone": z.Name}
	done := track(ctx, s.observer, "create-zone", fields)
	defer func() { done(err) }()

	if role != domain.RoleAdmin {
		return zone.ManagedZone{}, app.ErrForbidden
	}
	z = z.Normalized()
	if err = z.Validate(); err != nil {
		return zone.ManagedZone{}, err
	}

	id := uuid.New().String()
	err = s.edit(ctx, func(l zone.Log) (zone.Log, error) {
		if zone.NameTaken(s.catalog, l, z.Name, nil) {
			return l, fmt.Errorf("%q: %w", z.Name, zone.ErrDuplicateZone)
		}
		return l.Add(id, z), nil
	})
	if err != nil {
		return zone.ManagedZone{}, err
	}
	fields["id"] = id

	s.notify(fmt.Sprintf("New area %q created by admin", z.Name))
	return zone.ManagedZone{Zone: z, ID: id}, nil
}

func (s *zoneService) EditZone(ctx context.Context, role domain.Role, target zone.Target, z domain.Zone) (err error) {
	fields := map[string]any{"zone": z.Name, "built_in": target.BuiltIn}
	done := track(ctx, s.observer, "edit-zone", fields)
	defer func() { done(err) }()

	if role != domain.RoleAdmin {
		return app.ErrForbidden
	}
	z = z.Normalized()
	if err = z.Validate(); err != nil {
		return err
	}

	err = s.edit(ctx, func(l zone.Log) (zone.Log, error) {
		if _, ok := zone.Lookup(s.catalog, l, target); !ok {
			return l, fmt.Errorf("%s: %w", describeTarget(target), zone.ErrUnknownZone)
		}
		if zone.NameTaken(s.catalog, l, z.Name, &target) {
			return l, fmt.Errorf("%q: %w", z.Name, zone.ErrDuplicateZone)
		}
		return l.Edit(target, z)
	})
	if err != nil {
		return err
	}

	s.notify(fmt.Sprintf("Area %q updated by admin", z.Name))
	return nil
}

func (s *zoneService) DeleteZone(ctx context.Context, role domain.Role, target zone.Target) (err error) {
	fields := map[string]any{"target": describeTarget(target), "built_in": target.BuiltIn}
	done := track(ctx, s.observer, "delete-zone", fields)
	defer func() { done(err) }()

	if role != domain.RoleAdmin {
		return app.ErrForbidden
	}

	err = s.edit(ctx, func(l zone.Log) (zone.Log, error) {
		if _, ok := zone.Lookup(s.catalog, l, target); !ok {
			return l, fmt.Errorf("%s: %w", describeTarget(target), zone.ErrUnknownZone)
		}
		return l.Delete(target)
	})
	if err != nil {
		return err
	}

	if target.BuiltIn {
		s.notify(fmt.Sprintf("Built-in area %q deleted by admin", target.OriginalName))
	} else {
		s.notify("Area deleted by admin")
	}
	return nil
}

// edit loads the overlay log, applies fn and stores the result in one
// transaction.
func (s *zoneService) edit(ctx context.Context, fn func(zone.Log) (zone.Log, error)) error {
	return s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		overlays := repository.NewSQLiteOverlayRepo(tx)
		l, err := overlays.Load(ctx)
		if err != nil {
			return err
		}
		next, err := fn(l)
		if err != nil {
			return err
		}
		return overlays.Save(ctx, next)
	})
}

func (s *zoneService) notify(msg string) {
	if s.notifier != nil {
		s.notifier.Push(msg, s.now())
	}
}

func describeTarget(t zone.Target) string {
	if t.BuiltIn {
		return "built-in zone " + t.OriginalName
	}
	return "zone " + t.ID
}
