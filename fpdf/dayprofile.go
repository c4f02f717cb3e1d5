// Renders an aircraft's day as a PDF: altitude against time of day, with each leg shaded.
package fpdf

import (
	"fmt"
	"io"
	"time"

	"github.com/jung-kurt/gofpdf"
	"github.com/skypies/util/date"

	pj "github.com/simonsan-contrib/private-jets"
	"github.com/simonsan-contrib/private-jets/emissions"
)

// https://godoc.org/github.com/jung-kurt/gofpdf

// {{{ var()

var (
	BlackRGB = []int{0, 0, 0}
	RedRGB   = []int{0xff, 0, 0}
	LegRGB   = []int{0xff, 0xc0, 0x40}

	SpeedGradientMin = 100.0
	SpeedGradientMax = 500.0

	// http://www.perbang.dk/rgbgradient/
	SpeedGradientColors = [][]int{
		{0x00, 0xBF, 0xA9}, // 00BFA9
		{0x00, 0xC2, 0x66}, // 00C266
		{0x00, 0xC5, 0x21}, // 00C521
		{0x25, 0xC9, 0x00}, // 25C900
		{0x6F, 0xCC, 0x00}, // 6FCC00
		{0xBB, 0xD0, 0x00}, // BBD000
		{0xD3, 0x9D, 0x00}, // D39D00
		{0xD7, 0x53, 0x00}, // D75300
		{0xDA, 0x06, 0x00}, // DA0600
		{0xDE, 0x00, 0x48}, // DE0048
		{0xE1, 0x00, 0x99}, // E10099
		{0xDB, 0x00, 0xE5}, // DB00E5
	}
)

// }}}
// {{{ groundspeedToRGB

func groundspeedToRGB(speed float64) []int {
	if speed >= SpeedGradientMax {
		return SpeedGradientColors[len(SpeedGradientColors)-1]
	}
	if speed <= SpeedGradientMin {
		return SpeedGradientColors[0]
	}

	f := (speed - SpeedGradientMin) / (SpeedGradientMax - SpeedGradientMin)
	i := int(f * float64(len(SpeedGradientColors)-2))
	return SpeedGradientColors[i+1]
}

// }}}

type DayProfilePdf struct {
	*gofpdf.Fpdf // embedded
	Grid         *BaseGrid

	Day         time.Time // midnight UTC
	AltitudeMax float64   // feet
	Title       string
}

// {{{ NewDayProfile

func NewDayProfile(day time.Time, title string) *DayProfilePdf {
	p := DayProfilePdf{
		Fpdf:        gofpdf.New("L", "mm", "Letter", ""),
		Day:         date.TruncateToUTCDay(day),
		AltitudeMax: 50000,
		Title:       title,
	}
	p.AddPage()
	p.SetFont("Arial", "", 10)

	p.Grid = &BaseGrid{
		Fpdf:                p.Fpdf,
		OffsetU:             30,
		OffsetV:             25,
		W:                   230,
		H:                   110,
		MinX:                0,
		MaxX:                24,
		MinY:                0,
		MaxY:                p.AltitudeMax,
		Clip:                true,
		XGridlineEvery:      3,
		XMinorGridlineEvery: 1,
		YGridlineEvery:      10000,
		XTickFmt:            "%02.0f:00",
		YTickFmt:            "%.0fft",
		LineColor:           RedRGB,
	}

	p.MoveTo(p.Grid.OffsetU, 10)
	p.SetFont("Arial", "B", 14)
	p.Cell(200, 8, p.Title)
	p.SetFont("Arial", "", 10)

	return &p
}

// }}}
// {{{ p.hoursSinceMidnight, altitude

func (p DayProfilePdf) hoursSinceMidnight(t time.Time) float64 {
	return t.Sub(p.Day).Hours()
}

func altitude(tp pj.Trackpoint) float64 {
	if tp.OnGround || !tp.AltitudeValid {
		return 0
	}
	return tp.Altitude
}

// }}}
// {{{ p.DrawLegs

func (p *DayProfilePdf) DrawLegs(legs []emissions.LegEstimate) {
	for i, le := range legs {
		x1 := p.hoursSinceMidnight(le.Leg.Start.TimestampUTC)
		x2 := p.hoursSinceMidnight(le.Leg.End.TimestampUTC)
		p.Grid.Band(x1, x2, LegRGB, 0.3)

		u, _ := p.Grid.U(x1)
		p.SetXY(u, p.Grid.OffsetV+1)
		p.SetFont("Arial", "", 7)
		p.SetTextColor(0, 0, 0)
		p.Cell(30, 3, fmt.Sprintf("Leg %d", i+1))
	}
	p.SetFont("Arial", "", 10)
}

// }}}
// {{{ p.DrawTrack

func (p *DayProfilePdf) DrawTrack(t pj.Track) {
	p.SetLineWidth(0.4)
	for i := range t {
		if i == 0 {
			continue
		}
		rgb := groundspeedToRGB(t[i-1].GroundSpeed)
		p.SetDrawColor(rgb[0], rgb[1], rgb[2])
		p.Grid.Line(p.hoursSinceMidnight(t[i-1].TimestampUTC), altitude(t[i-1]),
			p.hoursSinceMidnight(t[i].TimestampUTC), altitude(t[i]))
	}
}

// }}}
// {{{ p.DrawSpeedGradientKey

func (p *DayProfilePdf) DrawSpeedGradientKey() {
	width, height := 6.0, 3.5
	speedPerBox := (SpeedGradientMax - SpeedGradientMin) / float64(len(SpeedGradientColors)-2)

	p.SetFont("Arial", "", 7)
	for i, rgb := range SpeedGradientColors {
		x := p.Grid.OffsetU + p.Grid.W + 4
		y := p.Grid.OffsetV + p.Grid.H - float64(i+1)*height
		p.SetFillColor(rgb[0], rgb[1], rgb[2])
		p.Rect(x, y, width, height, "F")
		lo := SpeedGradientMin + float64(i-1)*speedPerBox
		p.SetXY(x+width+1, y)
		text := fmt.Sprintf(">=%.0f kts", lo)
		if i == 0 {
			text = fmt.Sprintf("<%.0f kts", SpeedGradientMin)
		}
		p.Cell(20, height, text)
	}
	p.SetFont("Arial", "", 10)
}

// }}}
// {{{ p.DrawSummary

func (p *DayProfilePdf) DrawSummary(s emissions.DaySummary) {
	p.SetXY(p.Grid.OffsetU, p.Grid.OffsetV+p.Grid.H+10)
	p.SetTextColor(0, 0, 0)
	for i, le := range s.Legs {
		p.SetX(p.Grid.OffsetU)
		p.Cell(230, 5, fmt.Sprintf("Leg %d: %s-%s UTC, %.0f km, %.1f t CO2e (commercial first class: %.2f t)",
			i+1, le.Leg.Start.TimestampUTC.Format("15:04"), le.Leg.End.TimestampUTC.Format("15:04"),
			le.Estimate.DistanceKM, le.Estimate.ActualCO2eKg/1000, le.Estimate.CommercialCO2eKg/1000))
		p.Ln(5)
	}
	p.SetX(p.Grid.OffsetU)
	p.SetFont("Arial", "B", 10)
	p.Cell(230, 6, fmt.Sprintf("Total: %.1f t CO2e, %.2f years of one person's emissions in %s",
		s.ActualCO2eTons(), s.CitizenYears, s.Country))
	p.SetFont("Arial", "", 10)
}

// }}}

// {{{ WriteDayProfile

func WriteDayProfile(output io.Writer, af pj.Airframe, day time.Time, t pj.Track, s emissions.DaySummary) error {
	title := fmt.Sprintf("%s (%s) on %s", af.Registration, af.Model, day.UTC().Format("2006-01-02"))
	p := NewDayProfile(day, title)

	p.DrawLegs(s.Legs)
	p.Grid.DrawGridlines()
	p.DrawTrack(t)
	p.DrawSpeedGradientKey()
	p.DrawSummary(s)

	return p.Output(output)
}

// }}}

// {{{ -------------------------={ E N D }=----------------------------------

// Local variables:
// folded-file: t
// end:

// }}}
