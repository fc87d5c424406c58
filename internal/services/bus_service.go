package services

import (
	"context"

	"bus_logistics/internal/apperr"
	"bus_logistics/internal/models"
	"bus_logistics/internal/repository"
)

type BusRequest struct {
	BusNumber        string `json:"bus_number" binding:"required"`
	PlateNumber      string `json:"plate_number" binding:"required"`
	SeatingCapacity  int    `json:"seating_capacity"`
	BusType          string `json:"bus_type"`
	BusModel         string `json:"bus_model"`
	Manufacturer     string `json:"manufacturer"`
	YearManufactured int    `json:"year_manufactured"`
	Status           string `json:"status"`
}

type BusService struct {
	repo repository.Repository
}

func NewBusService(repo repository.Repository) *BusService {
	return &BusService{repo: repo}
}

func (s *BusService) Register(ctx context.Context, req BusRequest) (*models.Bus, error) {
	taken, err := s.repo.Buses().ExistsByBusNumber(ctx, req.BusNumber)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, apperr.Conflict("bus number is already in use")
	}
	taken, err = s.repo.Buses().ExistsByPlateNumber(ctx, req.PlateNumber)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, apperr.Conflict("plate number is already in use")
	}

	bus := &models.Bus{}
	applyBusRequest(bus, req)
	if err := s.repo.Buses().Create(ctx, bus); err != nil {
		return nil, err
	}
	return bus, nil
}

func (s *BusService) Update(ctx context.Context, id uint, req BusRequest) (*models.Bus, error) {
	bus, err := s.repo.Buses().FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if bus == nil {
		return nil, apperr.NotFound("bus not found with id: %d", id)
	}

	if bus.BusNumber != req.BusNumber {
		taken, err := s.repo.Buses().ExistsByBusNumber(ctx, req.BusNumber)
		if err != nil {
			return nil, err
		}
		if taken {
			return nil, apperr.Conflict("bus number is already in use")
		}
	}
	if bus.PlateNumber != req.PlateNumber {
		taken, err := s.repo.Buses().ExistsByPlateNumber(ctx, req.PlateNumber)
		if err != nil {
			return nil, err
		}
		if taken {
			return nil, apperr.Conflict("plate number is already in use")
		}
	}

	applyBusRequest(bus, req)
	if err := s.repo.Buses().Save(ctx, bus); err != nil {
		return nil, err
	}
	return bus, nil
}

func applyBusRequest(bus *models.Bus, req BusRequest) {
	bus.BusNumber = req.BusNumber
	bus.PlateNumber = req.PlateNumber
	bus.SeatingCapacity = req.SeatingCapacity
	bus.Type = req.BusType
	bus.BusModel = req.BusModel
	bus.Manufacturer = req.Manufacturer
	bus.YearManufactured = req.YearManufactured
	if req.Status != "" {
		bus.Status = req.Status
	} else if bus.Status == "" {
		bus.Status = "Active"
	}
}

func (s *BusService) List(ctx context.Context) ([]models.Bus, error) {
	return s.repo.Buses().FindAll(ctx)
}

func (s *BusService) Get(ctx context.Context, id uint) (*models.Bus, error) {
	bus, err := s.repo.Buses().FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if bus == nil {
		return nil, apperr.NotFound("bus not found with id: %d", id)
	}
	return bus, nil
}

func (s *BusService) Delete(ctx context.Context, id uint) error {
	exists, err := s.repo.Buses().ExistsByID(ctx, id)
	if err != nil {
		return err
	}
	if !exists {
		return apperr.NotFound("bus not found with id: %d", id)
	}
	return s.repo.Buses().Delete(ctx, id)
}
