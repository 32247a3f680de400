package postgres

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/pobimgroup/election-dashboard/internal/domain"
)

// GeoRepository reads the region/province/district reference data. The
// hierarchy is loaded once by the seed binary and treated as immutable while
// an election runs.
type GeoRepository struct {
	db *gorm.DB
}

func NewGeoRepository(db *gorm.DB) *GeoRepository {
	return &GeoRepository{db: db}
}

func (r *GeoRepository) ListRegions(ctx context.Context) ([]domain.Region, error) {
	var regions []domain.Region
	if err := r.db.WithContext(ctx).Order("id ASC").Find(&regions).Error; err != nil {
		return nil, fmt.Errorf("gorm geo: list regions: %w", err)
	}
	return regions, nil
}

func (r *GeoRepository) ListProvinces(ctx context.Context, regionID *domain.RegionID) ([]domain.Province, error) {
	q := r.db.WithContext(ctx).Order("code ASC")
	if regionID != nil {
		q = q.Where("region_id = ?", *regionID)
	}
	var provinces []domain.Province
	if err := q.Find(&provinces).Error; err != nil {
		return nil, fmt.Errorf("gorm geo: list provinces: %w", err)
	}
	return provinces, nil
}

func (r *GeoRepository) FindProvince(ctx context.Context, id domain.ProvinceID) (domain.Province, error) {
	var province domain.Province
	if err := r.db.WithContext(ctx).First(&province, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.Province{}, domain.ErrNotFound
		}
		return domain.Province{}, fmt.Errorf("gorm geo: find province: %w", err)
	}
	return province, nil
}

func (r *GeoRepository) ListDistricts(ctx context.Context, provinceID *domain.ProvinceID, regionID *domain.RegionID) ([]domain.District, error) {
	q := r.db.WithContext(ctx).Order("province_id ASC, zone_number ASC")
	if provinceID != nil {
		q = q.Where("province_id = ?", *provinceID)
	}
	if regionID != nil {
		q = q.Where("province_id IN (?)", r.db.Model(&domain.Province{}).Select("id").Where("region_id = ?", *regionID))
	}
	var districts []domain.District
	if err := q.Find(&districts).Error; err != nil {
		return nil, fmt.Errorf("gorm geo: list districts: %w", err)
	}
	return districts, nil
}

func (r *GeoRepository) FindDistrict(ctx context.Context, id domain.DistrictID) (domain.District, error) {
	var district domain.District
	if err := r.db.WithContext(ctx).First(&district, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.District{}, domain.ErrNotFound
		}
		return domain.District{}, fmt.Errorf("gorm geo: find district: %w", err)
	}
	return district, nil
}

func (r *GeoRepository) ResolveDistrict(ctx context.Context, id domain.DistrictID) (domain.DistrictRef, error) {
	type row struct {
		DistrictID string
		ProvinceID string
		RegionID   string
	}
	var res row
	err := r.db.WithContext(ctx).
		Model(&domain.District{}).
		Select("districts.id as district_id, districts.province_id as province_id, provinces.region_id as region_id").
		Joins("JOIN provinces ON provinces.id = districts.province_id").
		Where("districts.id = ?", id).
		Take(&res).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.DistrictRef{}, domain.ErrNotFound
		}
		return domain.DistrictRef{}, fmt.Errorf("gorm geo: resolve district: %w", err)
	}
	return domain.DistrictRef{
		DistrictID: domain.DistrictID(res.DistrictID),
		ProvinceID: domain.ProvinceID(res.ProvinceID),
		RegionID:   domain.RegionID(res.RegionID),
	}, nil
}

func (r *GeoRepository) DistrictIDsByProvince(ctx context.Context, provinceID domain.ProvinceID) ([]domain.DistrictID, error) {
	var ids []string
	if err := r.db.WithContext(ctx).
		Model(&domain.District{}).
		Where("province_id = ?", provinceID).
		Pluck("id", &ids).Error; err != nil {
		return nil, fmt.Errorf("gorm geo: district ids by province: %w", err)
	}
	return toDistrictIDs(ids), nil
}

func (r *GeoRepository) DistrictIDsByRegion(ctx context.Context, regionID domain.RegionID) ([]domain.DistrictID, error) {
	var ids []string
	if err := r.db.WithContext(ctx).
		Model(&domain.District{}).
		Where("province_id IN (?)", r.db.Model(&domain.Province{}).Select("id").Where("region_id = ?", regionID)).
		Pluck("id", &ids).Error; err != nil {
		return nil, fmt.Errorf("gorm geo: district ids by region: %w", err)
	}
	return toDistrictIDs(ids), nil
}

func (r *GeoRepository) SumVoterCounts(ctx context.Context, provinceID *domain.ProvinceID) (int64, error) {
	q := r.db.WithContext(ctx).Model(&domain.District{})
	if provinceID != nil {
		q = q.Where("province_id = ?", *provinceID)
	}
	var total int64
	if err := q.Select("COALESCE(SUM(voter_count), 0)").Scan(&total).Error; err != nil {
		return 0, fmt.Errorf("gorm geo: sum voter counts: %w", err)
	}
	return total, nil
}

func toDistrictIDs(raw []string) []domain.DistrictID {
	ids := make([]domain.DistrictID, len(raw))
	for i, id := range raw {
		ids[i] = domain.DistrictID(id)
	}
	return ids
}

var _ domain.GeoRepository = (*GeoRepository)(nil)
