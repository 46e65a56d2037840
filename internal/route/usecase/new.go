package usecase

import (
	"repoact-notify/internal/route/repository"
	"repoact-notify/pkg/log"
)

// implUseCase is the private implementation of route.UseCase.
type implUseCase struct {
	repo repository.Repository
	l    log.Logger
}

// New creates a new route UseCase implementation.
func New(repo repository.Repository, l log.Logger) *implUseCase {
	return &implUseCase{
		repo: repo,
		l:    l,
	}
}
