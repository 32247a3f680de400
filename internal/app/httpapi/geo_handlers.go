package httpapi

import (
	"net/http"

	"github.com/pobimgroup/election-dashboard/internal/domain"
)

func (a *API) listRegions(w http.ResponseWriter, r *http.Request) {
	regions, err := a.geo.ListRegions(r.Context())
	if err != nil {
		a.logger.Error("list regions failed", "err", err)
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, regions)
}

func (a *API) listProvinces(w http.ResponseWriter, r *http.Request) {
	var regionID *domain.RegionID
	if v := r.URL.Query().Get("regionId"); v != "" {
		id := domain.RegionID(v)
		regionID = &id
	}

	provinces, err := a.geo.ListProvinces(r.Context(), regionID)
	if err != nil {
		a.logger.Error("list provinces failed", "err", err)
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, provinces)
}

func (a *API) listDistricts(w http.ResponseWriter, r *http.Request) {
	var provinceID *domain.ProvinceID
	var regionID *domain.RegionID
	q := r.URL.Query()
	if v := q.Get("provinceId"); v != "" {
		id := domain.ProvinceID(v)
		provinceID = &id
	}
	if v := q.Get("regionId"); v != "" {
		id := domain.RegionID(v)
		regionID = &id
	}

	districts, err := a.geo.ListDistricts(r.Context(), provinceID, regionID)
	if err != nil {
		a.logger.Error("list districts failed", "err", err)
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, districts)
}
