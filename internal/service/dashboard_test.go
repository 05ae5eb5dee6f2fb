package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"meterportal/internal/config"
	"meterportal/internal/model"
	"meterportal/internal/warehouse"
	whMocks "meterportal/internal/warehouse/mocks"
)

func TestDashboardService_List(t *testing.T) {
	catalog, err := warehouse.NewCatalog("standardized_new")
	require.NoError(t, err)
	pc := config.PortalConfig{DashboardURLs: map[string]string{"production-epbp": "https://dash.example.com/p"}}

	mWh := new(whMocks.MockWarehouse)
	mWh.On("Query", mock.Anything, "production-epbp", catalog.AssignedProperties([]int{1, 5})).
		Return([]warehouse.Row{{"property_uri": "b/p1.xml"}, {"property_uri": nil}, {"property_uri": "b/p2.xml"}}, nil)
	mWh.On("Query", mock.Anything, "develop-epbp", mock.Anything).Return(nil, errors.New("denied"))

	access := stubAccess{grants: []model.Grant{{Number: 5, Role: "operator"}, {Number: 1, Role: "admin"}}}
	svc := NewDashboardService(access, mWh, catalog, []string{"production-epbp", "develop-epbp"}, pc.DashboardFor, nil)

	got, err := svc.List(context.Background(), testUser)
	require.NoError(t, err)
	assert.Equal(t, []model.Dashboard{
		{Project: "production-epbp", URI: "https://dash.example.com/p", Properties: []string{"b/p1.xml", "b/p2.xml"}},
		{Project: "develop-epbp", URI: config.DefaultDashboardURI, Properties: []string{}},
	}, got)
}

func TestDashboardService_List_NoParticipants(t *testing.T) {
	catalog, err := warehouse.NewCatalog("standardized_new")
	require.NoError(t, err)
	svc := NewDashboardService(stubAccess{}, new(whMocks.MockWarehouse), catalog, []string{"production-epbp"}, func(string) string { return "" }, nil)

	_, err = svc.List(context.Background(), testUser)
	assert.ErrorIs(t, err, ErrNoParticipants)
}
