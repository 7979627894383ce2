package services

import (
	"context"
	"errors"
	"time"

	"github.com/chandanamca2024-dotco/canteenapp-sub001/entity"
	"github.com/chandanamca2024-dotco/canteenapp-sub001/repository"
)

// MenuService: catalog reads for everyone, menu management for admins.
type MenuService struct {
	Repo    *repository.MenuRepository
	Hub     ChangeNotifier
	Timeout time.Duration
}

func NewMenuService(repo *repository.MenuRepository, hub ChangeNotifier, timeout time.Duration) *MenuService {
	return &MenuService{Repo: repo, Hub: hub, Timeout: timeout}
}

func (s *MenuService) List(ctx context.Context, q repository.MenuQuery) ([]entity.MenuItem, error) {
	ctx, cancel := context.WithTimeout(ctx, s.Timeout)
	defer cancel()
	return s.Repo.List(ctx, q)
}

func (s *MenuService) Get(ctx context.Context, id uint) (*entity.MenuItem, error) {
	ctx, cancel := context.WithTimeout(ctx, s.Timeout)
	defer cancel()
	return s.Repo.Get(ctx, id)
}

type MenuItemIn struct {
	Name      string `json:"name" binding:"required"`
	Detail    string `json:"detail"`
	Price     int64  `json:"price" binding:"min=0"`
	Category  string `json:"category"`
	FoodType  string `json:"foodType" binding:"omitempty,oneof=veg non-veg"`
	Available *bool  `json:"available"`
	Stock     int    `json:"stock" binding:"min=0"`
}

func (s *MenuService) Create(ctx context.Context, in *MenuItemIn) (*entity.MenuItem, error) {
	ctx, cancel := context.WithTimeout(ctx, s.Timeout)
	defer cancel()

	m := entity.MenuItem{
		Name: in.Name, Detail: in.Detail, Price: in.Price,
		Category: in.Category, FoodType: in.FoodType,
		Available: true, Stock: in.Stock,
	}
	if in.Available != nil {
		m.Available = *in.Available
	}
	if err := s.Repo.Create(ctx, &m); err != nil {
		return nil, err
	}
	s.Hub.Notify("menu_items")
	return &m, nil
}

type MenuItemUpdateIn struct {
	Name      *string `json:"name"`
	Detail    *string `json:"detail"`
	Price     *int64  `json:"price"`
	Category  *string `json:"category"`
	FoodType  *string `json:"foodType" binding:"omitempty,oneof=veg non-veg"`
	Available *bool   `json:"available"`
	Stock     *int    `json:"stock"`
}

func (s *MenuService) Update(ctx context.Context, id uint, in *MenuItemUpdateIn) error {
	ctx, cancel := context.WithTimeout(ctx, s.Timeout)
	defer cancel()

	fields := map[string]any{}
	if in.Name != nil {
		fields["name"] = *in.Name
	}
	if in.Detail != nil {
		fields["detail"] = *in.Detail
	}
	if in.Price != nil {
		if *in.Price < 0 {
			return errors.New("price must not be negative")
		}
		fields["price"] = *in.Price
	}
	if in.Category != nil {
		fields["category"] = *in.Category
	}
	if in.FoodType != nil {
		fields["food_type"] = *in.FoodType
	}
	if in.Available != nil {
		fields["available"] = *in.Available
	}
	if in.Stock != nil {
		if *in.Stock < 0 {
			return errors.New("stock must not be negative")
		}
		fields["stock"] = *in.Stock
	}
	if len(fields) == 0 {
		return errors.New("nothing to update")
	}

	if err := s.Repo.Update(ctx, id, fields); err != nil {
		return err
	}
	s.Hub.Notify("menu_items")
	return nil
}

func (s *MenuService) Delete(ctx context.Context, id uint) error {
	ctx, cancel := context.WithTimeout(ctx, s.Timeout)
	defer cancel()
	if err := s.Repo.Delete(ctx, id); err != nil {
		return err
	}
	s.Hub.Notify("menu_items")
	return nil
}
