// Package seed loads the geography reference data and a demo election into
// the database. Every write is an upsert so the seeder is safe to re-run.
package seed

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/pobimgroup/election-dashboard/internal/domain"
	"github.com/pobimgroup/election-dashboard/internal/platform/ids"
	"github.com/pobimgroup/election-dashboard/internal/platform/logger"
	"github.com/pobimgroup/election-dashboard/internal/rbac"
)

// provinceZoneFile mirrors the layout of province_zones.json: one entry per
// province with its list of constituency zone descriptions.
type provinceZoneFile struct {
	DataList []provinceZones `json:"data_list"`
}

type provinceZones struct {
	ProvinceCode int      `json:"province_code"`
	ProvinceName string   `json:"province_name"`
	ZoneList     []string `json:"zone_list"`
}

type electionDataFile struct {
	Regions []struct {
		RegionName string `json:"regionName"`
		Districts  []struct {
			Name       string `json:"name"`
			Province   string `json:"province"`
			VoterCount int    `json:"voterCount"`
		} `json:"districts"`
	} `json:"regions"`
}

type Seeder struct {
	db *gorm.DB
}

func NewSeeder(db *gorm.DB) *Seeder {
	return &Seeder{db: db}
}

func (s *Seeder) Run(ctx context.Context, dataDir string) error {
	if err := s.seedRegions(ctx); err != nil {
		return err
	}
	if err := s.seedProvincesAndDistricts(ctx, dataDir); err != nil {
		return err
	}
	if err := s.seedDemoUsers(ctx); err != nil {
		return err
	}
	if err := s.seedDemoElection(ctx); err != nil {
		return err
	}
	return nil
}

var regions = []domain.Region{
	{ID: "bangkok", Name: "Bangkok", NameTh: "กรุงเทพมหานคร"},
	{ID: "central", Name: "Central", NameTh: "ภาคกลาง"},
	{ID: "north", Name: "North", NameTh: "ภาคเหนือ"},
	{ID: "northeast", Name: "Northeast", NameTh: "ภาคตะวันออกเฉียงเหนือ"},
	{ID: "south", Name: "South", NameTh: "ภาคใต้"},
}

func (s *Seeder) seedRegions(ctx context.Context) error {
	for _, region := range regions {
		if err := s.upsert(ctx, &region); err != nil {
			return fmt.Errorf("seed regions: %w", err)
		}
	}
	logger.Info("regions seeded", "count", len(regions))
	return nil
}

func (s *Seeder) seedProvincesAndDistricts(ctx context.Context, dataDir string) error {
	zonesPath := filepath.Join(dataDir, "province_zones.json")
	raw, err := os.ReadFile(zonesPath)
	if err != nil {
		if os.IsNotExist(err) {
			logger.Info("province data file missing, skipping geography seed", "path", zonesPath)
			return nil
		}
		return fmt.Errorf("seed provinces: read %s: %w", zonesPath, err)
	}

	var zoneFile provinceZoneFile
	if err := json.Unmarshal(raw, &zoneFile); err != nil {
		return fmt.Errorf("seed provinces: parse %s: %w", zonesPath, err)
	}

	regionByProvince, voterCounts := s.loadElectionData(dataDir)

	provinceCount, districtCount := 0, 0
	for _, pz := range zoneFile.DataList {
		regionID := regionByProvince[pz.ProvinceName]
		if regionID == "" {
			regionID = "central"
		}

		province := domain.Province{
			ID:       domain.ProvinceID(fmt.Sprintf("p%02d", pz.ProvinceCode)),
			Code:     pz.ProvinceCode,
			Name:     pz.ProvinceName,
			NameTh:   pz.ProvinceName,
			RegionID: regionID,
		}
		if err := s.upsert(ctx, &province); err != nil {
			return fmt.Errorf("seed provinces: %w", err)
		}
		provinceCount++

		for i := range pz.ZoneList {
			zoneNumber := i + 1
			name := fmt.Sprintf("%s เขต %d", pz.ProvinceName, zoneNumber)
			district := domain.District{
				ID:         domain.DistrictID(fmt.Sprintf("%s-z%d", province.ID, zoneNumber)),
				ProvinceID: province.ID,
				ZoneNumber: zoneNumber,
				Name:       name,
				NameTh:     name,
				VoterCount: voterCounts[name],
			}
			if err := s.upsert(ctx, &district); err != nil {
				return fmt.Errorf("seed districts: %w", err)
			}
			districtCount++
		}
	}

	logger.Info("geography seeded", "provinces", provinceCount, "districts", districtCount)
	return nil
}

// loadElectionData reads the optional voter statistics file. Missing or broken
// data only costs the voter counts, never the seed itself.
func (s *Seeder) loadElectionData(dataDir string) (map[string]domain.RegionID, map[string]int) {
	regionByProvince := map[string]domain.RegionID{}
	voterCounts := map[string]int{}

	raw, err := os.ReadFile(filepath.Join(dataDir, "election-data-from-wevis.json"))
	if err != nil {
		return regionByProvince, voterCounts
	}
	var data electionDataFile
	if err := json.Unmarshal(raw, &data); err != nil {
		logger.Error("election data file unreadable, ignoring", "err", err)
		return regionByProvince, voterCounts
	}

	for _, region := range data.Regions {
		for _, district := range region.Districts {
			regionByProvince[district.Province] = domain.RegionID(normalizeRegion(region.RegionName))
			voterCounts[district.Name] = district.VoterCount
		}
	}
	return regionByProvince, voterCounts
}

func normalizeRegion(name string) string {
	switch name {
	case "Bangkok", "bangkok":
		return "bangkok"
	case "North", "north":
		return "north"
	case "Northeast", "northeast":
		return "northeast"
	case "South", "south":
		return "south"
	default:
		return "central"
	}
}

func (s *Seeder) seedDemoUsers(ctx context.Context) error {
	type demo struct {
		id       string
		email    string
		password string
		name     string
		role     rbac.Role
		region   *domain.RegionID
		province *domain.ProvinceID
		district *domain.DistrictID
	}

	bangkok := domain.RegionID("bangkok")
	bkkProvince := domain.ProvinceID("p10")
	bkkZone1 := domain.DistrictID("p10-z1")

	users := []demo{
		{id: "super-admin-1", email: "admin@election.go.th", password: "admin123", name: "Super Admin", role: rbac.RoleSuperAdmin},
		{id: "regional-admin-bkk", email: "regional.bkk@election.go.th", password: "regional123", name: "Regional Admin Bangkok", role: rbac.RoleRegionalAdmin, region: &bangkok},
		{id: "province-admin-bkk", email: "province.bkk@election.go.th", password: "province123", name: "Province Admin Bangkok", role: rbac.RoleProvinceAdmin, province: &bkkProvince},
		{id: "district-official-1", email: "district1.bkk@election.go.th", password: "district123", name: "District Official BKK Zone 1", role: rbac.RoleDistrictOfficial, district: &bkkZone1},
	}

	for _, d := range users {
		hash, err := bcrypt.GenerateFromPassword([]byte(d.password), bcrypt.DefaultCost)
		if err != nil {
			return fmt.Errorf("seed users: hash password: %w", err)
		}
		email := d.email
		user := domain.User{
			ID:              domain.UserID(d.id),
			Email:           &email,
			PasswordHash:    string(hash),
			Name:            d.name,
			Role:            d.role,
			ScopeRegionID:   d.region,
			ScopeProvinceID: d.province,
			ScopeDistrictID: d.district,
		}
		if err := s.upsert(ctx, &user); err != nil {
			return fmt.Errorf("seed users: %w", err)
		}
	}

	logger.Info("demo users seeded", "count", len(users))
	return nil
}

func (s *Seeder) seedDemoElection(ctx context.Context) error {
	election := domain.Election{
		ID:              "demo-election-2570",
		Name:            "General Election 2027",
		NameTh:          "การเลือกตั้งทั่วไป พ.ศ. 2570",
		Description:     "Demo election for exercising the system",
		Status:          domain.ElectionOpen,
		HasPartyList:    true,
		HasConstituency: true,
		HasReferendum:   true,
		StartDate:       mustDate("2026-01-01"),
		EndDate:         mustDate("2027-12-31"),
	}
	if err := s.upsert(ctx, &election); err != nil {
		return fmt.Errorf("seed election: %w", err)
	}

	type demoParty struct {
		number int
		name   string
		nameTh string
		color  string
	}
	demoParties := []demoParty{
		{1, "Pheu Thai Party", "พรรคเพื่อไทย", "#E3000F"},
		{2, "Move Forward Party", "พรรคก้าวไกล", "#FF6600"},
		{3, "Bhumjaithai Party", "พรรคภูมิใจไทย", "#00529B"},
		{4, "Palang Pracharath Party", "พรรคพลังประชารัฐ", "#002D62"},
		{5, "Democrat Party", "พรรคประชาธิปัตย์", "#1E90FF"},
		{6, "United Thai Nation Party", "พรรครวมไทยสร้างชาติ", "#FF0066"},
		{7, "Chart Thai Pattana Party", "พรรคชาติไทยพัฒนา", "#4B0082"},
		{8, "Thai Sang Thai Party", "พรรคไทยสร้างไทย", "#228B22"},
	}

	var parties []domain.Party
	for _, dp := range demoParties {
		party := domain.Party{
			ID:          domain.PartyID(fmt.Sprintf("%s-party-%d", election.ID, dp.number)),
			ElectionID:  election.ID,
			PartyNumber: dp.number,
			Name:        dp.name,
			NameTh:      dp.nameTh,
			Color:       dp.color,
		}
		if err := s.upsert(ctx, &party); err != nil {
			return fmt.Errorf("seed parties: %w", err)
		}
		parties = append(parties, party)
	}

	question := domain.ReferendumQuestion{
		ID:             domain.QuestionID(election.ID + "-question-1"),
		ElectionID:     election.ID,
		QuestionNumber: 1,
		QuestionText:   "ท่านเห็นชอบหรือไม่ที่จะให้มีการแก้ไขรัฐธรรมนูญ พ.ศ. 2560",
	}
	if err := s.upsert(ctx, &question); err != nil {
		return fmt.Errorf("seed question: %w", err)
	}

	count, err := s.seedDemoCandidates(ctx, election.ID, parties)
	if err != nil {
		return err
	}

	logger.Info("demo election seeded", "parties", len(parties), "candidates", count)
	return nil
}

var candidateNames = []struct {
	title     string
	firstName string
	lastName  string
}{
	{"นาย", "สมชาย", "ใจดี"},
	{"นาง", "สมหญิง", "รักไทย"},
	{"นาย", "วิชัย", "พัฒนา"},
	{"นางสาว", "ปรียา", "สุขใจ"},
	{"นาย", "ประยุทธ์", "มั่นคง"},
	{"นาย", "ทักษิณ", "เจริญ"},
	{"นางสาว", "ยิ่งลักษณ์", "รุ่งเรือง"},
	{"นาย", "อภิสิทธิ์", "ประชาธิป"},
}

// seedDemoCandidates creates up to five candidates per district, one per
// party, cycling through a pool of demo names.
func (s *Seeder) seedDemoCandidates(ctx context.Context, electionID domain.ElectionID, parties []domain.Party) (int, error) {
	var districts []domain.District
	if err := s.db.WithContext(ctx).Find(&districts).Error; err != nil {
		return 0, fmt.Errorf("seed candidates: list districts: %w", err)
	}

	perDistrict := len(parties)
	if perDistrict > 5 {
		perDistrict = 5
	}

	total := 0
	for _, district := range districts {
		for i := 0; i < perDistrict; i++ {
			partyID := parties[i].ID
			name := candidateNames[(total+i)%len(candidateNames)]
			candidate := domain.Candidate{
				ID:              domain.CandidateID(ids.NewULID()),
				ElectionID:      electionID,
				DistrictID:      district.ID,
				PartyID:         &partyID,
				CandidateNumber: i + 1,
				TitleTh:         name.title,
				FirstNameTh:     name.firstName,
				LastNameTh:      name.lastName,
			}
			// Keep existing rows: re-running the seed must not mint new
			// candidate IDs for districts already populated.
			err := s.db.WithContext(ctx).
				Clauses(clause.OnConflict{DoNothing: true}).
				Create(&candidate).Error
			if err != nil {
				return total, fmt.Errorf("seed candidates: %w", err)
			}
			total++
		}
	}
	return total, nil
}

func (s *Seeder) upsert(ctx context.Context, value any) error {
	return s.db.WithContext(ctx).
		Clauses(clause.OnConflict{UpdateAll: true}).
		Create(value).Error
}

func mustDate(value string) (t time.Time) {
	t, err := time.Parse("2006-01-02", value)
	if err != nil {
		panic(err)
	}
	return t
}
