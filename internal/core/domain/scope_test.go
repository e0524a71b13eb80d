package domain_test

import (
	"testing"

	"github.com/retailnet/retail_network_app/internal/core/domain"
	"github.com/stretchr/testify/assert"
)

func TestIsValidChildLevel(t *testing.T) {
	tests := []struct {
		name   string
		parent domain.ScopeLevel
		child  domain.ScopeLevel
		want   bool
	}{
		{"state under company", domain.LevelCompany, domain.LevelState, true},
		{"district under state", domain.LevelState, domain.LevelDistrict, true},
		{"local under district", domain.LevelDistrict, domain.LevelLocal, true},
		{"local under state (flattened)", domain.LevelState, domain.LevelLocal, true},
		{"local under company (flattened)", domain.LevelCompany, domain.LevelLocal, true},
		{"district under company skips state", domain.LevelCompany, domain.LevelDistrict, false},
		{"state under state", domain.LevelState, domain.LevelState, false},
		{"company under anything", domain.LevelState, domain.LevelCompany, false},
		{"nothing under local", domain.LevelLocal, domain.LevelLocal, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, domain.IsValidChildLevel(tt.parent, tt.child))
		})
	}
}

func TestIsValidRequestPair(t *testing.T) {
	tests := []struct {
		name string
		from domain.ScopeLevel
		to   domain.ScopeLevel
		want bool
	}{
		{"state requests from company", domain.LevelState, domain.LevelCompany, true},
		{"district requests from state", domain.LevelDistrict, domain.LevelState, true},
		{"local requests from district", domain.LevelLocal, domain.LevelDistrict, true},
		{"local requests from state", domain.LevelLocal, domain.LevelState, true},
		{"local requests from company", domain.LevelLocal, domain.LevelCompany, true},
		{"state requests from district (wrong direction)", domain.LevelState, domain.LevelDistrict, false},
		{"district requests from company skips state", domain.LevelDistrict, domain.LevelCompany, false},
		{"company requests from anyone", domain.LevelCompany, domain.LevelState, false},
		{"district requests from local", domain.LevelDistrict, domain.LevelLocal, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, domain.IsValidRequestPair(tt.from, tt.to))
		})
	}
}
