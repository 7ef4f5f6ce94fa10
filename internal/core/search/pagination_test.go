package search

import (
	"errors"
	"testing"
)

func testPageConfig() PageConfig {
	return PageConfig{
		FirstPage:            1,
		DefaultPage:          1,
		DefaultPageSize:      20,
		PageSizeMax:          100,
		DefaultSortField:     FieldDate,
		DefaultSortDirection: SortDesc,
	}
}

func intPtr(v int) *int       { return &v }
func strPtr(v string) *string { return &v }

func TestNormalizePage_Defaults(t *testing.T) {
	req, err := NormalizePage(testPageConfig(), nil, nil, nil, nil)
	if err != nil {
		t.Fatalf("NormalizePage returned error: %v", err)
	}

	if req.Number != 0 {
		t.Fatalf("expected 0-based default page, got %d", req.Number)
	}
	if req.Size != 20 {
		t.Fatalf("expected default size 20, got %d", req.Size)
	}
	if req.SortField != FieldDate || req.Direction != SortDesc {
		t.Fatalf("expected default sort date DESC, got %s %s", req.SortField, req.Direction)
	}
}

func TestNormalizePage_PageBelowFirstCollapsesToDefault(t *testing.T) {
	req, err := NormalizePage(testPageConfig(), intPtr(0), intPtr(10000), nil, nil)
	if err != nil {
		t.Fatalf("NormalizePage returned error: %v", err)
	}

	if req.Number != 0 {
		t.Fatalf("expected default page for page=0, got %d", req.Number)
	}
	if req.Size != 100 {
		t.Fatalf("expected size clamped to max 100, got %d", req.Size)
	}
}

func TestNormalizePage_TranslatesToZeroBased(t *testing.T) {
	req, err := NormalizePage(testPageConfig(), intPtr(3), intPtr(25), nil, nil)
	if err != nil {
		t.Fatalf("NormalizePage returned error: %v", err)
	}

	if req.Number != 2 {
		t.Fatalf("expected page 3 to normalize to index 2, got %d", req.Number)
	}
	if req.Offset() != 50 {
		t.Fatalf("expected offset 50, got %d", req.Offset())
	}
}

func TestNormalizePage_SizeLowerClamp(t *testing.T) {
	for _, raw := range []int{0, -5} {
		req, err := NormalizePage(testPageConfig(), nil, intPtr(raw), nil, nil)
		if err != nil {
			t.Fatalf("NormalizePage returned error: %v", err)
		}
		if req.Size != 1 {
			t.Fatalf("expected size %d to clamp to 1, got %d", raw, req.Size)
		}
	}
}

func TestNormalizePage_SortFieldValidated(t *testing.T) {
	_, err := NormalizePage(testPageConfig(), nil, nil, strPtr("owner"), nil)
	if !errors.Is(err, ErrUnknownSortField) {
		t.Fatalf("expected ErrUnknownSortField, got %v", err)
	}
}

func TestNormalizePage_SortDirectionValidated(t *testing.T) {
	_, err := NormalizePage(testPageConfig(), nil, nil, nil, strPtr("SIDEWAYS"))
	if !errors.Is(err, ErrUnknownSortDirection) {
		t.Fatalf("expected ErrUnknownSortDirection, got %v", err)
	}
}

func TestNormalizePage_DirectionCaseInsensitive(t *testing.T) {
	req, err := NormalizePage(testPageConfig(), nil, nil, strPtr("basePrice"), strPtr("asc"))
	if err != nil {
		t.Fatalf("NormalizePage returned error: %v", err)
	}

	if req.Direction != SortAsc {
		t.Fatalf("expected ASC, got %s", req.Direction)
	}
	if got := req.OrderBy(); got != "base_price ASC" {
		t.Fatalf("expected order by base_price ASC, got %q", got)
	}
}
