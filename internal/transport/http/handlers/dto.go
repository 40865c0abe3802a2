package handlers

import (
	"encoding/json"
	"time"

	"github.com/pribylovaa/tenders-service/internal/index"
	"github.com/pribylovaa/tenders-service/internal/models"
)

type Supplier struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// Tender — тендер в ответе API. Сумма пишется JSON-числом без потери точности.
type Tender struct {
	ID          int         `json:"id"`
	Date        string      `json:"date"` // YYYY-MM-DD
	Title       string      `json:"title"`
	Description string      `json:"description"`
	AmountEur   json.Number `json:"amount_eur"`
	Suppliers   []Supplier  `json:"suppliers"`
}

type TendersListResponse struct {
	Items      []Tender `json:"items"`
	PageNumber int      `json:"page_number"`
	PageSize   int      `json:"page_size"`
	TotalItems int      `json:"total_items"`
	TotalPages int      `json:"total_pages"`
}

type TenderGetResponse struct {
	Item *Tender `json:"item"`
}

type RefreshResponse struct {
	Status string `json:"status"`
}

// BuildInfo — метаданные опубликованного снапшота.
type BuildInfo struct {
	BuildID       string    `json:"build_id"`
	Source        string    `json:"source"`
	BuiltAt       time.Time `json:"built_at"`
	PageLimit     int       `json:"page_limit"`
	PagesLoaded   int       `json:"pages_loaded"`
	PagesFromDisk int       `json:"pages_from_disk"`
	FailedPages   []int     `json:"failed_pages"`
	Degraded      bool      `json:"degraded"`
}

type StatusResponse struct {
	Ready   bool       `json:"ready"`
	Tenders int        `json:"tenders"`
	Build   *BuildInfo `json:"build,omitempty"`
}

type ProbeResponse struct {
	Status string `json:"status"`
}

func tenderFromDomain(t models.Tender) Tender {
	out := Tender{
		ID:          t.ID,
		Date:        t.Date.String(),
		Title:       t.Title,
		Description: t.Description,
		AmountEur:   json.Number(t.Amount.String()),
		Suppliers:   make([]Supplier, 0, len(t.Suppliers)),
	}

	for _, s := range t.Suppliers {
		out.Suppliers = append(out.Suppliers, Supplier{ID: s.ID, Name: s.Name})
	}

	return out
}

func listFromDomain(res *models.PagedResult) TendersListResponse {
	out := TendersListResponse{
		Items:      make([]Tender, 0, len(res.Items)),
		PageNumber: res.PageNumber,
		PageSize:   res.PageSize,
		TotalItems: res.TotalItems,
		TotalPages: res.TotalPages,
	}

	for _, t := range res.Items {
		out.Items = append(out.Items, tenderFromDomain(t))
	}

	return out
}

func buildInfoFromDomain(info index.BuildInfo) *BuildInfo {
	failed := info.FailedPages
	if failed == nil {
		failed = []int{}
	}

	return &BuildInfo{
		BuildID:       info.BuildID,
		Source:        string(info.Source),
		BuiltAt:       info.BuiltAt,
		PageLimit:     info.PageLimit,
		PagesLoaded:   info.PagesLoaded,
		PagesFromDisk: info.PagesFromDisk,
		FailedPages:   failed,
		Degraded:      info.Degraded(),
	}
}
