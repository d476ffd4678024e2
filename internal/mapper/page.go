package mapper

import (
	"encoding/json"

	"github.com/voclio/admin/internal/envelope"
	"github.com/voclio/admin/internal/model"
)

// PageHint carries the page and limit the caller asked for. They are used
// when the backend omits them.
type PageHint struct {
	Page  int
	Limit int
}

type pageMeta struct {
	Page  *int `json:"page"`
	Limit *int `json:"limit"`
	Total *int `json:"total"`
}

type backendPage struct {
	Data json.RawMessage `json:"data"`
	pageMeta
	Pagination *pageMeta `json:"pagination"`
}

// Page maps a paginated list in any of the accepted forms:
//
//	{"data": [...], "total": 25, "page": 1, "limit": 10, "total_pages": 3}
//	{"data": [...], "pagination": {"page": 1, "limit": 10, "total": 25}}
//	{"success": true, "data": [...], "pagination": {...}}
//	{"success": true, "data": {"data": [...], "pagination": {...}}}
//
// total_pages is always recomputed from total and limit.
func Page[T any](p envelope.Payload, entity string, item ItemFunc[T], hint PageHint) (model.PaginatedResponse[T], error) {
	raw, err := p.Unwrap()
	if err != nil {
		return model.PaginatedResponse[T]{}, err
	}

	var b backendPage
	switch {
	case p.Kind == envelope.Enveloped && isArray(raw):
		// Items in data, pagination alongside it in the envelope.
		b.Data = raw
		if err := json.Unmarshal(p.Body, &b.pageMeta); err != nil {
			return model.PaginatedResponse[T]{}, mapErr(entity, "decode envelope pagination", err)
		}
		if pg, ok := p.Field("pagination"); ok {
			b.Pagination = &pageMeta{}
			if err := json.Unmarshal(pg, b.Pagination); err != nil {
				return model.PaginatedResponse[T]{}, mapErr(entity, "decode pagination", err)
			}
		}
	case isObject(raw):
		if err := json.Unmarshal(raw, &b); err != nil {
			return model.PaginatedResponse[T]{}, mapErr(entity, "decode page", err)
		}
	default:
		return model.PaginatedResponse[T]{}, mapErr(entity, "list payload is not an object", nil)
	}

	if !isArray(b.Data) {
		return model.PaginatedResponse[T]{}, mapErr(entity, "missing data array", nil)
	}

	data, err := items(b.Data, entity, item)
	if err != nil {
		return model.PaginatedResponse[T]{}, err
	}

	meta := b.pageMeta
	if b.Pagination != nil {
		meta = mergeMeta(*b.Pagination, meta)
	}

	page := pick(meta.Page, hint.Page, 1)
	limit := pick(meta.Limit, hint.Limit, len(data))
	total := pick(meta.Total, len(data), 0)

	return model.NewPage(data, total, page, limit), nil
}

// mergeMeta fills the gaps of primary from secondary.
func mergeMeta(primary, secondary pageMeta) pageMeta {
	if primary.Page == nil {
		primary.Page = secondary.Page
	}
	if primary.Limit == nil {
		primary.Limit = secondary.Limit
	}
	if primary.Total == nil {
		primary.Total = secondary.Total
	}
	return primary
}

// pick returns the first positive candidate, or the last fallback.
func pick(v *int, fallbacks ...int) int {
	if v != nil && *v > 0 {
		return *v
	}
	for _, f := range fallbacks[:len(fallbacks)-1] {
		if f > 0 {
			return f
		}
	}
	return fallbacks[len(fallbacks)-1]
}
