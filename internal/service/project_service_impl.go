package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/plantmap/internal/app"
	"github.com/alexanderramin/plantmap/internal/db"
	"github.com/alexanderramin/plantmap/internal/domain"
	"github.com/alexanderramin/plantmap/internal/grid"
	"github.com/alexanderramin/plantmap/internal/repository"
	"github.com/google/uuid"
)

type projectService struct {
	projects repository.ProjectRepo
	uow      db.UnitOfWork
	notifier app.Notifier
	now      app.Clock
	observer UseCaseObserver
}

func NewProjectService(
	projects repository.ProjectRepo,
	uow db.UnitOfWork,
	notifier app.Notifier,
	now app.Clock,
	observers ...UseCaseObserver,
) ProjectService {
	if now == nil {
		now = time.Now
	}
	return &projectService{
		projects: projects,
		uow:      uow,
		notifier: notifier,
		now:      now,
		observer: useCaseObserverOrNoop(observers),
	}
}

// CreateProject validates the form, schedules the project from today and
// writes it together with all of its cells. Either every cell is assigned
// or none is.
func (s *projectService) CreateProject(ctx context.Context, req app.CreateProjectRequest) (p *domain.Project, err error) {
	fields := map[string]any{"view": req.ViewID, "type": string(req.Type), "cells": len(req.Cells)}
	done := track(ctx, s.observer, "create-project", fields)
	defer func() { done(err) }()

	now := s.now()
	p = &domain.Project{
		ID:           uuid.New().String(),
		Title:        strings.TrimSpace(req.Title),
		Engineer:     strings.TrimSpace(req.Engineer),
		Type:         req.Type,
		DurationDays: req.DurationDays,
		Description:  strings.TrimSpace(req.Description),
		Priority:     req.Priority,
		ZoneName:     req.ZoneName,
		ViewID:       req.ViewID,
		Cells:        grid.NewSelection(req.Cells...).Cells(),
		Status:       domain.ProjectActive,
		CreatedAt:    now,
	}
	if p.Priority == "" {
		p.Priority = domain.PriorityMedium
	}
	if err = p.Validate(); err != nil {
		return nil, err
	}
	p.Schedule(now)

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		if err := repository.NewSQLiteProjectRepo(tx).Create(ctx, p); err != nil {
			return err
		}
		return repository.NewSQLiteAssignmentRepo(tx).Assign(ctx, p.ID, p.ViewID, p.Cells)
	})
	if err != nil {
		return nil, fmt.Errorf("creating project: %w", err)
	}
	fields["project_id"] = p.ID

	if s.notifier != nil {
		s.notifier.Push(projectStartedMessage(p), now)
	}
	return p, nil
}

func (s *projectService) GetByID(ctx context.Context, id string) (*domain.Project, error) {
	return s.projects.GetByID(ctx, id)
}

func projectStartedMessage(p *domain.Project) string {
	return fmt.Sprintf("New %s project %q started by %s in %s",
		strings.ToLower(p.Type.Label()), p.Title, p.Engineer, p.ZoneName)
}
