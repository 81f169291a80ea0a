package services

import (
	"shopmate/internal/domain"
	"shopmate/internal/repos"
)

type CatalogService struct {
	Items *repos.CatalogRepo
}

func NewCatalogService(items *repos.CatalogRepo) *CatalogService {
	return &CatalogService{Items: items}
}

func (s *CatalogService) Get(itemID string) (domain.CatalogItem, error) {
	return s.Items.Get(itemID)
}

func (s *CatalogService) Search(query, category string, limit int) ([]domain.CatalogItem, error) {
	if limit <= 0 {
		limit = 10
	}
	if limit > 25 {
		limit = 25
	}
	return s.Items.Search(query, category, limit)
}
