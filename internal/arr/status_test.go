package arr

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		obs  Observation
		want Status
	}{
		{"not found", Observation{}, StatusNone},
		{"has file", Observation{Found: true, HasFile: true}, StatusDownloaded},
		{"has file unmonitored", Observation{Found: true, HasFile: true, Monitored: false}, StatusDownloaded},
		{"queued", Observation{Found: true, Monitored: true, Queued: true}, StatusQueued},
		{"missing", Observation{Found: true, Monitored: true, Released: true}, StatusMissing},
		{"unreleased", Observation{Found: true, Monitored: true}, StatusUnreleased},
		{"unmonitored without file", Observation{Found: true, Released: true}, StatusNone},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Classify(tt.obs))
		})
	}
}

func TestStatus_Valid(t *testing.T) {
	assert.True(t, StatusQueued.Valid())
	assert.False(t, StatusNone.Valid())
	assert.False(t, Status("bogus").Valid())
}

func TestCleanTitle(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"The Office (US)", "office us"},
		{"Doctor Who (2005)", "doctor who"},
		{"Pokémon", "pokemon"},
		{"Star Wars: Episode IV", "star wars episode 4"},
		{"Law & Order", "law and order"},
		{"Grey's Anatomy", "greys anatomy"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, CleanTitle(tt.in))
		})
	}
}

func TestSameTitle(t *testing.T) {
	assert.True(t, SameTitle("Breaking Bad", 2008, "Breaking Bad", 2008))
	assert.True(t, SameTitle("Shōgun", 2024, "Shogun", 2024))
	assert.True(t, SameTitle("The Office", 2005, "Office", 2005))
	assert.True(t, SameTitle("Dark", 2017, "Dark", 2018), "one year apart is tolerated")
	assert.True(t, SameTitle("Dark", 0, "Dark", 2017))
	assert.False(t, SameTitle("Dark", 2017, "Dark", 2020))
	assert.False(t, SameTitle("Breaking Bad", 2008, "Breaking Away", 2008))
	assert.False(t, SameTitle("", 0, "Anything", 0))
}
