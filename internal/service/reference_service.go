package service

import (
	"context"
	"fmt"

	"github.com/logistics-backoffice/internal/domain"
	"github.com/logistics-backoffice/internal/repository"
)

// DictionaryNames ключи справочников в ответах API
var DictionaryNames = []string{
	"countries",
	"cities",
	"terminals",
	"currencies",
	"containers",
	"danger_classes",
	"incoterms",
	"packaging_types",
	"delivery_types",
	"cargos",
}

// Dictionaries все справочники с полным набором полей
type Dictionaries struct {
	Countries      []domain.Country       `json:"countries"`
	Cities         []domain.City          `json:"cities"`
	Terminals      []domain.Terminal      `json:"terminals"`
	Currencies     []domain.Currency      `json:"currencies"`
	Containers     []domain.Container     `json:"containers"`
	DangerClasses  []domain.DangerClass   `json:"danger_classes"`
	Incoterms      []domain.Incoterms     `json:"incoterms"`
	PackagingTypes []domain.PackagingType `json:"packaging_types"`
	DeliveryTypes  []domain.DeliveryType  `json:"delivery_types"`
	Cargos         []domain.Cargo         `json:"cargos"`
}

// ReferenceService определяет чтение справочников
type ReferenceService interface {
	repository.ReferenceRepository
	All(ctx context.Context) (*Dictionaries, error)
}

type referenceService struct {
	repository.ReferenceRepository
}

// NewReferenceService создаёт новый экземпляр сервиса
func NewReferenceService(refRepo repository.ReferenceRepository) ReferenceService {
	return &referenceService{ReferenceRepository: refRepo}
}

// All читает все справочники по очереди в одном запросе
func (s *referenceService) All(ctx context.Context) (*Dictionaries, error) {
	var (
		d   Dictionaries
		err error
	)
	steps := []struct {
		name string
		load func() error
	}{
		{"countries", func() error { d.Countries, err = s.Countries(ctx); return err }},
		{"cities", func() error { d.Cities, err = s.Cities(ctx); return err }},
		{"terminals", func() error { d.Terminals, err = s.Terminals(ctx); return err }},
		{"currencies", func() error { d.Currencies, err = s.Currencies(ctx); return err }},
		{"containers", func() error { d.Containers, err = s.Containers(ctx); return err }},
		{"danger_classes", func() error { d.DangerClasses, err = s.DangerClasses(ctx); return err }},
		{"incoterms", func() error { d.Incoterms, err = s.Incoterms(ctx); return err }},
		{"packaging_types", func() error { d.PackagingTypes, err = s.PackagingTypes(ctx); return err }},
		{"delivery_types", func() error { d.DeliveryTypes, err = s.DeliveryTypes(ctx); return err }},
		{"cargos", func() error { d.Cargos, err = s.Cargos(ctx); return err }},
	}
	for _, step := range steps {
		if err := step.load(); err != nil {
			return nil, fmt.Errorf("failed to load %s: %w", step.name, err)
		}
	}
	return &d, nil
}
