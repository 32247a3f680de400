// Package identity provides the mock citizen-ID verification service. It
// derives a stable fake identity from the citizen ID so repeated logins with
// the same ID always resolve to the same person and eligible district.
package identity

import (
	"crypto/md5"
	"encoding/binary"
	"regexp"

	"github.com/pobimgroup/election-dashboard/internal/domain"
)

var citizenIDPattern = regexp.MustCompile(`^\d{13}$`)

var thaiFirstNames = []string{
	"สมชาย", "สมหญิง", "วิชัย", "วิภา", "ประเสริฐ", "ประภา",
	"สุรชัย", "สุภา", "เกียรติ", "กัลยา", "ณัฐ", "นภา",
}

var thaiLastNames = []string{
	"ใจดี", "มั่นคง", "เจริญ", "สุขใจ", "รักไทย", "พัฒนา",
	"ศรีสุข", "วงศ์ไทย", "ทองดี", "แสงทอง", "สว่าง", "มีชัย",
}

type provinceZones struct {
	name     string
	maxZones int
}

var provinces = []provinceZones{
	{"กรุงเทพมหานคร", 33},
	{"นนทบุรี", 8},
	{"ปทุมธานี", 7},
	{"สมุทรปราการ", 8},
	{"เชียงใหม่", 10},
	{"ขอนแก่น", 11},
	{"นครราชสีมา", 16},
	{"สงขลา", 9},
}

// MockVerifier stands in for the national identity service.
type MockVerifier struct{}

func NewMockVerifier() MockVerifier {
	return MockVerifier{}
}

func (MockVerifier) Verify(citizenID string) (domain.CitizenInfo, bool) {
	if !citizenIDPattern.MatchString(citizenID) {
		return domain.CitizenInfo{}, false
	}

	male := pick(citizenID+"gender", 2) == 0
	title := "นาย"
	if !male {
		if pick(citizenID+"title", 2) == 0 {
			title = "นาง"
		} else {
			title = "นางสาว"
		}
	}

	province := provinces[pick(citizenID+"province", len(provinces))]

	return domain.CitizenInfo{
		CitizenID:        citizenID,
		TitleTh:          title,
		FirstNameTh:      thaiFirstNames[pick(citizenID+"first", len(thaiFirstNames))],
		LastNameTh:       thaiLastNames[pick(citizenID+"last", len(thaiLastNames))],
		EligibleProvince: province.name,
		EligibleZone:     pick(citizenID+"zone", province.maxZones) + 1,
	}, true
}

// pick hashes the seed and reduces it modulo max, so the same citizen ID
// always maps to the same choice.
func pick(seed string, max int) int {
	sum := md5.Sum([]byte(seed))
	return int(binary.BigEndian.Uint32(sum[:4]) % uint32(max))
}

var _ domain.IdentityVerifier = MockVerifier{}
