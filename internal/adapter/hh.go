package adapter

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/amishk599/skillradar/internal/model"
)

// DefaultHHBaseURL is the public HeadHunter API.
const DefaultHHBaseURL = "https://api.hh.ru"

// hhListResponse is one page of the vacancy search endpoint.
type hhListResponse struct {
	Items []struct {
		ID string `json:"id"`
	} `json:"items"`
	Page  int `json:"page"`
	Pages int `json:"pages"`
}

// hhVacancy is the vacancy detail endpoint response.
type hhVacancy struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	KeySkills []struct {
		Name string `json:"name"`
	} `json:"key_skills"`
}

// HHAdapter lists and fetches vacancies from the HeadHunter API.
type HHAdapter struct {
	baseURL    string
	searchTerm string
	perPage    int
	userAgent  string
	client     *http.Client
}

// NewHHAdapter creates an adapter that searches vacancies for searchTerm,
// perPage ids per page. An empty baseURL uses DefaultHHBaseURL.
func NewHHAdapter(baseURL, searchTerm string, perPage int, userAgent string, client *http.Client) *HHAdapter {
	if baseURL == "" {
		baseURL = DefaultHHBaseURL
	}
	return &HHAdapter{
		baseURL:    strings.TrimRight(baseURL, "/"),
		searchTerm: searchTerm,
		perPage:    perPage,
		userAgent:  userAgent,
		client:     client,
	}
}

// Host returns the API host, used as the rate limiting key.
func (a *HHAdapter) Host() string {
	u, err := url.Parse(a.baseURL)
	if err != nil || u.Host == "" {
		return a.baseURL
	}
	return u.Host
}

// ListVacancyIDs returns the vacancy ids on one search results page. Pages
// are zero-based. A page past the last one yields no ids.
func (a *HHAdapter) ListVacancyIDs(ctx context.Context, page int) ([]string, error) {
	q := url.Values{}
	q.Set("text", a.searchTerm)
	q.Set("page", strconv.Itoa(page))
	q.Set("per_page", strconv.Itoa(a.perPage))
	endpoint := a.baseURL + "/vacancies?" + q.Encode()

	var resp hhListResponse
	if err := a.getJSON(ctx, endpoint, &resp); err != nil {
		return nil, fmt.Errorf("hh list page %d: %w", page, err)
	}

	ids := make([]string, 0, len(resp.Items))
	for _, item := range resp.Items {
		if item.ID != "" {
			ids = append(ids, item.ID)
		}
	}
	return ids, nil
}

// FetchVacancy returns the vacancy with its key skills.
func (a *HHAdapter) FetchVacancy(ctx context.Context, id string) (model.Vacancy, error) {
	endpoint := a.baseURL + "/vacancies/" + url.PathEscape(id)

	var hv hhVacancy
	if err := a.getJSON(ctx, endpoint, &hv); err != nil {
		return model.Vacancy{}, fmt.Errorf("hh vacancy %s: %w", id, err)
	}

	v := model.Vacancy{
		ID:          id,
		Title:       hv.Name,
		Skills:      make([]string, 0, len(hv.KeySkills)),
		CollectedAt: time.Now().UTC(),
	}
	for _, ks := range hv.KeySkills {
		if name := strings.TrimSpace(ks.Name); name != "" {
			v.Skills = append(v.Skills, name)
		}
	}
	return v, nil
}

func (a *HHAdapter) getJSON(ctx context.Context, endpoint string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	if a.userAgent != "" {
		req.Header.Set("User-Agent", a.userAgent)
		req.Header.Set("HH-User-Agent", a.userAgent)
	}

	resp, err := a.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return &model.HTTPError{
			StatusCode: resp.StatusCode,
			URL:        endpoint,
			RetryAfter: parseRetryAfter(resp.Header.Get("Retry-After")),
			Err:        fmt.Errorf("unexpected status %d", resp.StatusCode),
		}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decoding response: %w", err)
	}
	return nil
}
