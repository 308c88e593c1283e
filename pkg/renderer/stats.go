package renderer

import (
	"bytes"
	"fmt"
	"time"

	"github.com/olekukonko/tablewriter"
)

// RenderStats contains statistics about the rendering process
type RenderStats struct {
	Width          int           // Image width in pixels
	Height         int           // Image height in pixels
	Tiles          int           // Number of tiles rendered
	TotalPixels    int           // Total number of pixels rendered
	PrimaryRays    int           // Camera rays traced, one per pixel
	ClosestQueries int           // Closest-hit scene queries, including secondary rays
	AnyQueries     int           // Any-hit scene queries issued by binary shadow tests
	Elapsed        time.Duration // Wall time of the render
}

func (rs *RenderStats) add(other RenderStats) {
	rs.Tiles += other.Tiles
	rs.TotalPixels += other.TotalPixels
	rs.PrimaryRays += other.PrimaryRays
	rs.ClosestQueries += other.ClosestQueries
	rs.AnyQueries += other.AnyQueries
}

// QueriesPerPixel returns the average number of scene queries per pixel
func (rs RenderStats) QueriesPerPixel() float64 {
	if rs.TotalPixels == 0 {
		return 0
	}
	return float64(rs.ClosestQueries+rs.AnyQueries) / float64(rs.TotalPixels)
}

// Table builds a tabular representation of the render statistics.
func (rs RenderStats) Table() string {
	var buf bytes.Buffer
	table := tablewriter.NewWriter(&buf)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	table.SetHeader([]string{"Stat", "Value"})
	table.Append([]string{"Resolution", fmt.Sprintf("%dx%d", rs.Width, rs.Height)})
	table.Append([]string{"Tiles", fmt.Sprintf("%d", rs.Tiles)})
	table.Append([]string{"Pixels", fmt.Sprintf("%d", rs.TotalPixels)})
	table.Append([]string{"Primary rays", fmt.Sprintf("%d", rs.PrimaryRays)})
	table.Append([]string{"Closest-hit queries", fmt.Sprintf("%d", rs.ClosestQueries)})
	table.Append([]string{"Any-hit queries", fmt.Sprintf("%d", rs.AnyQueries)})
	table.Append([]string{"Queries per pixel", fmt.Sprintf("%.2f", rs.QueriesPerPixel())})
	table.SetFooter([]string{"Elapsed", rs.Elapsed.Round(time.Millisecond).String()})

	table.Render()
	return buf.String()
}
