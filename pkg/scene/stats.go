package scene

import (
	"bytes"
	"fmt"

	"github.com/olekukonko/tablewriter"
)

// Table builds a tabular representation of the scene statistics.
func (st Stats) Table() string {
	var buf bytes.Buffer
	table := tablewriter.NewWriter(&buf)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetAutoFormatHeaders(false)
	table.SetHeader([]string{"Category", "Item", "Value"})
	table.Append([]string{"Shapes", "---", fmt.Sprintf("%d", st.FiniteShapes+st.InfiniteShapes)})
	table.Append([]string{"", "Spheres", fmt.Sprintf("%d", st.Spheres)})
	table.Append([]string{"", "Planes", fmt.Sprintf("%d", st.Planes)})
	table.Append([]string{"", "Cubes", fmt.Sprintf("%d", st.Cubes)})
	if st.Other > 0 {
		table.Append([]string{"", "Other", fmt.Sprintf("%d", st.Other)})
	}
	table.Append([]string{" ", " ", " "})
	table.Append([]string{"BVH", "---", fmt.Sprintf("%d finite / %d infinite", st.FiniteShapes, st.InfiniteShapes)})
	table.Append([]string{"", "Nodes", fmt.Sprintf("%d", st.BVH.TotalNodes)})
	table.Append([]string{"", "Leaves", fmt.Sprintf("%d", st.BVH.LeafNodes)})
	table.Append([]string{"", "Max depth", fmt.Sprintf("%d", st.BVH.MaxDepth)})
	table.Append([]string{"", "Avg leaf depth", fmt.Sprintf("%.2f", st.BVH.AvgDepth)})
	if st.BVH.TotalNodes > 0 {
		table.Append([]string{"", "Bounds", fmt.Sprintf("%v - %v", st.Bounds.Min, st.Bounds.Max)})
	}
	table.Append([]string{" ", " ", " "})
	table.Append([]string{"Shading", "Materials", fmt.Sprintf("%d", st.Materials)})
	table.Append([]string{"", "Lights", fmt.Sprintf("%d", st.Lights)})

	table.Render()
	return buf.String()
}
