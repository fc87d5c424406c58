package services

import (
	"context"

	"bus_logistics/internal/apperr"
	"bus_logistics/internal/models"
	"bus_logistics/internal/repository"
)

type StopService struct {
	repo repository.Repository
}

func NewStopService(repo repository.Repository) *StopService {
	return &StopService{repo: repo}
}

func (s *StopService) List(ctx context.Context) ([]models.Stop, error) {
	return s.repo.Stops().FindAll(ctx)
}

func (s *StopService) Get(ctx context.Context, id uint) (*models.Stop, error) {
	stop, err := s.repo.Stops().FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if stop == nil {
		return nil, apperr.NotFound("stop not found with id: %d", id)
	}
	return stop, nil
}

func (s *StopService) Create(ctx context.Context, stop *models.Stop) (*models.Stop, error) {
	taken, err := s.repo.Stops().ExistsByName(ctx, stop.Name)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, apperr.Conflict("stop name is already taken")
	}
	if err := s.repo.Stops().Create(ctx, stop); err != nil {
		return nil, err
	}
	return stop, nil
}

func (s *StopService) Update(ctx context.Context, id uint, details *models.Stop) (*models.Stop, error) {
	stop, err := s.repo.Stops().FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if stop == nil {
		return nil, apperr.NotFound("stop not found with id: %d", id)
	}

	if stop.Name != details.Name {
		taken, err := s.repo.Stops().ExistsByName(ctx, details.Name)
		if err != nil {
			return nil, err
		}
		if taken {
			return nil, apperr.Conflict("stop name is already in use")
		}
	}

	stop.Name = details.Name
	stop.Address = details.Address
	stop.Street = details.Street
	stop.Landmark = details.Landmark
	stop.Description = details.Description
	stop.Type = details.Type
	stop.Latitude = details.Latitude
	stop.Longitude = details.Longitude
	if err := s.repo.Stops().Save(ctx, stop); err != nil {
		return nil, err
	}
	return stop, nil
}

func (s *StopService) Delete(ctx context.Context, id uint) error {
	exists, err := s.repo.Stops().ExistsByID(ctx, id)
	if err != nil {
		return err
	}
	if !exists {
		return apperr.NotFound("stop not found with id: %d", id)
	}
	return s.repo.Stops().Delete(ctx, id)
}
