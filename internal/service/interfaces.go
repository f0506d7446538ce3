package service

import (
	"context"

	"github.com/alexanderramin/plantmap/internal/app"
	"github.com/alexanderramin/plantmap/internal/domain"
	"github.com/alexanderramin/plantmap/internal/zone"
)

type ZoneService interface {
	app.ZoneUseCase
	Log(ctx context.Context) (zone.Log, error)
	Catalog() zone.Catalog
}

type ProjectService interface {
	app.ProjectUseCase
	GetByID(ctx context.Context, id string) (*domain.Project, error)
}

type BoardService interface {
	app.BoardUseCase
}
