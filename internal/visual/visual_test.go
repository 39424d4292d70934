package visual

import (
	"bytes"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/stemsi/jinro-backend/internal/model"
	"github.com/stemsi/jinro-backend/internal/testutil"
)

func TestResolve_Tables(t *testing.T) {
	r := NewResolver(testutil.Store(t), true)

	got, err := r.Resolve(model.KindUniversityList)
	require.NoError(t, err)
	assert.Equal(t, model.RenderTable, got.Type)
	require.NotNil(t, got.Table)
	assert.Len(t, got.Table.Rows, 6)
	assert.Equal(t, "대학명", got.Table.Columns[0])
	assert.Equal(t, []string{"서울대학교", "서울", "1946", "28000", "의예과, 컴퓨터공학과", "1.1", "78.5"}, got.Table.Rows[0])

	got, err = r.Resolve(model.KindMajorList)
	require.NoError(t, err)
	assert.Len(t, got.Table.Rows, 5)
}

func TestResolve_Charts(t *testing.T) {
	r := NewResolver(testutil.Store(t), true)

	t.Run("university employment descending", func(t *testing.T) {
		got, err := r.Resolve(model.KindUniversityDetail)
		require.NoError(t, err)
		require.Equal(t, model.RenderChart, got.Type)
		assert.Equal(t, model.ChartBar, got.Chart.Type)
		pts := got.Chart.Series[0].Points
		require.Len(t, pts, 6)
		assert.Equal(t, "서울대학교", pts[0].Label)
		for i := 1; i < len(pts); i++ {
			assert.GreaterOrEqual(t, pts[i-1].Y, pts[i].Y)
		}
	})

	t.Run("salary scatter grouped by field", func(t *testing.T) {
		got, err := r.Resolve(model.KindMajorDetail)
		require.NoError(t, err)
		assert.Equal(t, model.ChartScatter, got.Chart.Type)
		assert.Len(t, got.Chart.Series, 5, "one series per field")
		p := got.Chart.Series[0].Points[0]
		assert.Equal(t, "컴퓨터공학과", p.Label)
		assert.InDelta(t, 4800, p.X, 1e-9)
		assert.InDelta(t, p.X, p.Size, 1e-9)
	})

	t.Run("admission three series by year", func(t *testing.T) {
		got, err := r.Resolve(model.KindAdmissionTrend)
		require.NoError(t, err)
		assert.Equal(t, model.ChartLine, got.Chart.Type)
		require.Len(t, got.Chart.Series, 3)
		years := []float64{}
		for _, p := range got.Chart.Series[0].Points {
			years = append(years, p.X)
		}
		assert.Equal(t, []float64{2021, 2022, 2023}, years)
	})

	t.Run("major employment ascending", func(t *testing.T) {
		got, err := r.Resolve(model.KindEmploymentChart)
		require.NoError(t, err)
		assert.Equal(t, model.ChartBarH, got.Chart.Type)
		pts := got.Chart.Series[0].Points
		assert.Equal(t, "심리학과", pts[0].Label)
		assert.Equal(t, "간호학과", pts[len(pts)-1].Label)
	})

	t.Run("grade kinds have nothing extra", func(t *testing.T) {
		for _, k := range []model.Kind{model.KindGradeAnalysis, model.KindGradeRecommendation} {
			got, err := r.Resolve(k)
			require.NoError(t, err)
			assert.Equal(t, model.RenderNone, got.Type)
			assert.False(t, Offerable(k))
		}
	})

	t.Run("unknown kind", func(t *testing.T) {
		_, err := r.Resolve(model.Kind("pie"))
		assert.ErrorIs(t, err, ErrUnknownKind)
	})
}

func TestResolve_ChartsDisabledDegradesToTables(t *testing.T) {
	r := NewResolver(testutil.Store(t), false)

	for _, k := range []model.Kind{model.KindUniversityDetail, model.KindMajorDetail, model.KindAdmissionTrend, model.KindEmploymentChart} {
		got, err := r.Resolve(k)
		require.NoError(t, err, k)
		assert.Equal(t, model.RenderTable, got.Type, k)
		assert.Equal(t, k, got.Kind)
	}

	got, err := r.Resolve(model.KindAdmissionTrend)
	require.NoError(t, err)
	assert.Equal(t, "진학률", got.Table.Name)

	_, err = r.Resolve(model.Kind("pie"))
	assert.ErrorIs(t, err, ErrUnknownKind)
}

func TestPNGRenderer_RendersEveryChartKind(t *testing.T) {
	r := NewResolver(testutil.Store(t), true)
	renderer, err := NewPNGRenderer("")
	require.NoError(t, err)

	for _, k := range []model.Kind{model.KindUniversityDetail, model.KindMajorDetail, model.KindAdmissionTrend, model.KindEmploymentChart} {
		t.Run(string(k), func(t *testing.T) {
			rend, err := r.Resolve(k)
			require.NoError(t, err)

			raw, err := renderer.Render(rend.Chart)
			require.NoError(t, err)

			img, err := png.Decode(bytes.NewReader(raw))
			require.NoError(t, err)
			assert.Equal(t, pngWidth, img.Bounds().Dx())
			assert.Equal(t, pngHeight, img.Bounds().Dy())
		})
	}
}

func TestPNGRenderer_Errors(t *testing.T) {
	renderer, err := NewPNGRenderer("")
	require.NoError(t, err)

	_, err = renderer.Render(&model.ChartSpec{Type: model.ChartBar})
	assert.ErrorIs(t, err, ErrEmptyChart)

	_, err = renderer.Render(&model.ChartSpec{Type: "pie", Series: []model.Series{{Points: []model.Point{{X: 1, Y: 1}}}}})
	assert.ErrorContains(t, err, "unsupported chart type")

	_, err = NewPNGRenderer("/does/not/exist.ttf")
	assert.Error(t, err)
}

func TestWriteWorkbook(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteWorkbook(&buf, testutil.Store(t)))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{"대학", "학과", "진학률"}, f.GetSheetList())

	rows, err := f.GetRows("대학")
	require.NoError(t, err)
	require.Len(t, rows, 7)
	assert.Equal(t, "대학명", rows[0][0])
	assert.Equal(t, "서울대학교", rows[1][0])

	rows, err = f.GetRows("진학률")
	require.NoError(t, err)
	assert.Equal(t, []string{"2021", "73.7", "52.2", "21.5"}, rows[1])
}

func TestOfferable(t *testing.T) {
	assert.True(t, Offerable(model.KindUniversityList))
	assert.True(t, Offerable(model.KindEmploymentChart))
	assert.False(t, Offerable(""))
}
