package hardware

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"assetdb/internal/store"
	"assetdb/internal/testutil"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestWriteReport(t *testing.T) {
	items := sampleFleet()
	items[0].NetworkInterfaces = []Interface{
		{InterfaceName: "eth0", IPAddress: testutil.Ptr("10.0.0.1"), MACAddress: testutil.Ptr("aa:bb:cc:dd:ee:ff")},
		{InterfaceName: "eth1"},
	}
	items[0].Switches = append(items[0].Switches, SwitchLink{ID: 8, Name: testutil.Ptr("tor-2")})

	var buf bytes.Buffer
	require.NoError(t, WriteReport(&buf, items))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{ReportSheet}, f.GetSheetList())
	rows, err := f.GetRows(ReportSheet)
	require.NoError(t, err)
	require.Len(t, rows, 4)
	assert.Equal(t, "Hostname", rows[0][1])
	assert.Equal(t, "Network Interfaces", rows[0][17])
	assert.Equal(t, "a", rows[1][1])
	assert.Equal(t, "DC1", rows[1][10])
	assert.Equal(t, "tor-1 - 1,\ntor-2 - ", rows[1][16])
	assert.Equal(t, "eth0 [10.0.0.1 | aa:bb:cc:dd:ee:ff],\neth1 [ | ]", rows[1][17])
}

func TestExportEndpoint(t *testing.T) {
	d := testutil.OpenDB(t)
	svc := NewService(NewRepo(d))
	_, err := svc.Create(context.Background(), store.Fields{"hostname": "node-01"})
	require.NoError(t, err)

	h := NewHTTP(svc)
	h.now = func() time.Time { return time.UnixMilli(1700000000000) }
	r := mux.NewRouter()
	h.RegisterRoutes(r)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/hardwares/export", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, ReportContentType, rec.Header().Get("Content-Type"))
	assert.Equal(t, `attachment; filename="hardware-report-1700000000000.xlsx"`, rec.Header().Get("Content-Disposition"))

	f, err := excelize.OpenReader(rec.Body)
	require.NoError(t, err)
	defer f.Close()
	rows, err := f.GetRows(ReportSheet)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "node-01", rows[1][1])
}
