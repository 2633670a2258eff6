package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/logistics-backoffice/internal/domain"
	"github.com/logistics-backoffice/internal/dto"
	"github.com/logistics-backoffice/internal/service"
)

// DictionaryHandler отдаёт справочники только для чтения
type DictionaryHandler struct {
	responder
	refService service.ReferenceService
}

func NewDictionaryHandler(refService service.ReferenceService, logger *slog.Logger) *DictionaryHandler {
	return &DictionaryHandler{
		responder:  responder{logger: logger},
		refService: refService,
	}
}

// respondList отдаёт коллекцию под ключом key, проецируя каждую запись
func respondList[T, I any](h *DictionaryHandler, w http.ResponseWriter, r *http.Request, key string, load func(context.Context) ([]T, error), project func(*T) I) {
	records, err := load(r.Context())
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	items := make([]I, len(records))
	for i := range records {
		items[i] = project(&records[i])
	}
	h.respondJSON(w, http.StatusOK, map[string][]I{key: items})
}

// List возвращает имена справочников
func (h *DictionaryHandler) List(w http.ResponseWriter, r *http.Request) {
	h.respondJSON(w, http.StatusOK, dto.DictionaryListResponse{Dictionaries: service.DictionaryNames})
}

// All возвращает все справочники с полным набором полей
func (h *DictionaryHandler) All(w http.ResponseWriter, r *http.Request) {
	all, err := h.refService.All(r.Context())
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}
	h.respondJSON(w, http.StatusOK, all)
}

func (h *DictionaryHandler) Countries(w http.ResponseWriter, r *http.Request) {
	respondList(h, w, r, "countries", h.refService.Countries, func(c *domain.Country) dto.CountryItem {
		return dto.CountryItem{ID: c.ID, NameEN: c.NameEN, NameUK: c.NameUK, Alpha2: c.Alpha2, Alpha3: c.Alpha3}
	})
}

func (h *DictionaryHandler) Cities(w http.ResponseWriter, r *http.Request) {
	respondList(h, w, r, "cities", h.refService.Cities, func(c *domain.City) dto.CityItem {
		item := dto.CityItem{ID: c.ID, NameEN: c.NameEN, NameUK: c.NameUK}
		if c.Country != nil {
			item.CountryNameEN = &c.Country.NameEN
		}
		return item
	})
}

func (h *DictionaryHandler) Terminals(w http.ResponseWriter, r *http.Request) {
	respondList(h, w, r, "terminals", h.refService.Terminals, func(t *domain.Terminal) dto.TerminalItem {
		return dto.TerminalItem{ID: t.ID, NameEN: t.NameEN, NameUK: t.NameUK, TerminalType: t.TerminalType}
	})
}

func (h *DictionaryHandler) Currencies(w http.ResponseWriter, r *http.Request) {
	respondList(h, w, r, "currencies", h.refService.Currencies, func(c *domain.Currency) dto.CurrencyItem {
		return dto.CurrencyItem{ID: c.ID, Name: c.Name, Code: c.Code}
	})
}

func (h *DictionaryHandler) Containers(w http.ResponseWriter, r *http.Request) {
	respondList(h, w, r, "containers", h.refService.Containers, func(c *domain.Container) dto.ContainerItem {
		return dto.ContainerItem{ID: c.ID, Size: c.Size, ContainerType: c.ContainerType}
	})
}

func (h *DictionaryHandler) DangerClasses(w http.ResponseWriter, r *http.Request) {
	respondList(h, w, r, "danger_classes", h.refService.DangerClasses, func(d *domain.DangerClass) dto.DangerClassItem {
		return dto.DangerClassItem{ID: d.ID, ClassNumber: d.ClassNumber, Description: d.Description}
	})
}

func (h *DictionaryHandler) Incoterms(w http.ResponseWriter, r *http.Request) {
	respondList(h, w, r, "incoterms", h.refService.Incoterms, func(i *domain.Incoterms) dto.IncotermsItem {
		return dto.IncotermsItem{ID: i.ID, Abbreviation: i.Abbreviation, Description: i.Description}
	})
}

func (h *DictionaryHandler) PackagingTypes(w http.ResponseWriter, r *http.Request) {
	respondList(h, w, r, "packaging_types", h.refService.PackagingTypes, func(p *domain.PackagingType) dto.PackagingTypeItem {
		return dto.PackagingTypeItem{ID: p.ID, NameEN: p.NameEN, NameUK: p.NameUK}
	})
}

func (h *DictionaryHandler) DeliveryTypes(w http.ResponseWriter, r *http.Request) {
	respondList(h, w, r, "delivery_types", h.refService.DeliveryTypes, func(d *domain.DeliveryType) dto.DeliveryTypeItem {
		return dto.DeliveryTypeItem{ID: d.ID, ShortName: d.ShortName, FullName: d.FullName}
	})
}

func (h *DictionaryHandler) Cargos(w http.ResponseWriter, r *http.Request) {
	respondList(h, w, r, "cargos", h.refService.Cargos, func(c *domain.Cargo) dto.CargoItem {
		return dto.CargoItem{ID: c.ID, NameEN: c.NameEN, NameUK: c.NameUK, CargoCode: c.CargoCode}
	})
}
