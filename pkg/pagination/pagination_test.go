package pagination

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
)

func paramsFor(t *testing.T, target string) Params {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	rec := httptest.NewRecorder()
	return FromContext(e.NewContext(req, rec))
}

func TestFromContext_Defaults(t *testing.T) {
	p := paramsFor(t, "/")

	if p.Limit != DefaultLimit {
		t.Errorf("expected default limit %d, got %d", DefaultLimit, p.Limit)
	}
	if p.Offset != 0 {
		t.Errorf("expected default offset 0, got %d", p.Offset)
	}
}

func TestFromContext_CustomValues(t *testing.T) {
	p := paramsFor(t, "/?limit=20&offset=10")

	if p.Limit != 20 {
		t.Errorf("expected limit 20, got %d", p.Limit)
	}
	if p.Offset != 10 {
		t.Errorf("expected offset 10, got %d", p.Offset)
	}
}

func TestFromContext_Clamps(t *testing.T) {
	p := paramsFor(t, "/?limit=5000&offset=-4")

	if p.Limit != MaxLimit {
		t.Errorf("expected limit clamped to %d, got %d", MaxLimit, p.Limit)
	}
	if p.Offset != 0 {
		t.Errorf("expected negative offset clamped to 0, got %d", p.Offset)
	}
}

func TestPage(t *testing.T) {
	items := []int{1, 2, 3, 4, 5}

	tests := []struct {
		name    string
		params  Params
		want    []int
		hasMore bool
	}{
		{"first page", Params{Limit: 2, Offset: 0}, []int{1, 2}, true},
		{"middle page", Params{Limit: 2, Offset: 2}, []int{3, 4}, true},
		{"last page", Params{Limit: 2, Offset: 4}, []int{5}, false},
		{"past the end", Params{Limit: 2, Offset: 9}, []int{}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := Page(items, tt.params)
			if resp.Total != 5 {
				t.Errorf("expected total 5, got %d", resp.Total)
			}
			if len(resp.Data) != len(tt.want) {
				t.Fatalf("expected %v, got %v", tt.want, resp.Data)
			}
			for i := range tt.want {
				if resp.Data[i] != tt.want[i] {
					t.Errorf("expected %v, got %v", tt.want, resp.Data)
				}
			}
			if resp.HasMore != tt.hasMore {
				t.Errorf("expected has_more=%v, got %v", tt.hasMore, resp.HasMore)
			}
		})
	}
}

func TestPage_DoesNotAliasInput(t *testing.T) {
	items := []int{1, 2, 3}
	resp := Page(items, Params{Limit: 3})
	resp.Data[0] = 99
	if items[0] != 1 {
		t.Error("expected page data to be a copy of the input")
	}
}

func TestParams_HasPrevious(t *testing.T) {
	if (Params{Limit: 10, Offset: 0}).HasPrevious() {
		t.Error("expected no previous page at offset 0")
	}
	if !(Params{Limit: 10, Offset: 10}).HasPrevious() {
		t.Error("expected a previous page at offset 10")
	}
}
