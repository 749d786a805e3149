package practice

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClampStatsPinsEverythingIntoRange(t *testing.T) {
	p := New("Clamp Test")
	p.Reputation = 7.2
	p.Cleanliness = -5
	p.Patients = -3
	p.Staff[0].Morale = 140
	p.Staff[0].Skill = -20
	p.Staff[0].Associate = &Associate{Loyalty: 180, PatientAttachment: -4}
	p.Relationships[RelLab] = 130

	p.ClampStats()

	assert.Equal(t, 5.0, p.Reputation)
	assert.Equal(t, 0.0, p.Cleanliness)
	assert.Equal(t, 0, p.Patients)
	assert.Equal(t, 100.0, p.Staff[0].Morale)
	assert.Equal(t, 0.0, p.Staff[0].Skill)
	assert.Equal(t, 100.0, p.Staff[0].Associate.Loyalty)
	assert.Equal(t, 0, p.Staff[0].Associate.PatientAttachment)
	assert.Equal(t, 100.0, p.Relationships[RelLab])
}

func TestAddInsuranceRecordsDayOnceOnly(t *testing.T) {
	p := New("Ins Test")
	p.Day = 12

	p.AddInsurance("delta_ppo")
	p.Day = 20
	p.AddInsurance("delta_ppo")

	require.Len(t, p.Insurance, 1)
	assert.Equal(t, 12, p.InsuranceAddedDay["delta_ppo"])
}

func TestRemoveStaff(t *testing.T) {
	p := New("Staff Test")
	id := p.Staff[1].ID

	require.True(t, p.RemoveStaff(id))
	assert.False(t, p.RemoveStaff(id))
	assert.Equal(t, -1, p.StaffByID(id))
}

func TestMemoryRepoIsolatesCopies(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryRepo(New("Repo Test"))

	a, err := repo.Get(ctx)
	require.NoError(t, err)
	a.Cash = 999
	a.Staff[0].Morale = 1
	a.Relationships[RelLab] = 2

	b, err := repo.Get(ctx)
	require.NoError(t, err)
	assert.NotEqual(t, 999.0, b.Cash)
	assert.NotEqual(t, 1.0, b.Staff[0].Morale)
	assert.NotEqual(t, 2.0, b.Relationships[RelLab])

	require.NoError(t, repo.Set(ctx, a))
	c, err := repo.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, 999.0, c.Cash)
}

func TestSiteCountIncludesPrimary(t *testing.T) {
	p := New("Sites")
	assert.Equal(t, 1, p.SiteCount())
	p.Locations = append(p.Locations, Location{ID: "loc1"}, Location{ID: "loc2"})
	assert.Equal(t, 3, p.SiteCount())
}
