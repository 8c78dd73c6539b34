// pkg/pmdoc/layout.go
package pmdoc

// ContentWidth is the usable width of every printed page. All column
// widths in a row must sum to it.
const ContentWidth = 525

// MinDeviceColWidth is the floor for a per-device column. Hitting the
// floor marks the table (and its page) as overflowing.
const MinDeviceColWidth = 24

// tableWidths resolves the fixed columns of a checklist table and
// divides the remainder evenly across device columns.
type tableWidths struct {
	No       int
	Desc     int
	Remark   int
	Device   int
	Overflow bool
}

func deviceColumnWidth(available, numDevices int) (int, bool) {
	if numDevices <= 0 {
		return available, false
	}
	w := available / numDevices
	if w < MinDeviceColWidth {
		return MinDeviceColWidth, true
	}
	return w, false
}

// pointMachineWidths narrows the description as more machines are added;
// at most four fit before the remark column shrinks too.
func pointMachineWidths(numDevices int) tableWidths {
	tw := tableWidths{No: 20, Desc: 260, Remark: 40}
	switch {
	case numDevices > 3:
		tw.Desc, tw.Remark = 210, 30
	case numDevices > 2:
		tw.Desc = 230
	}
	tw.Device, tw.Overflow = deviceColumnWidth(ContentWidth-tw.No-tw.Desc-tw.Remark, numDevices)
	return tw
}

func moxaTapWidths(numDevices int) tableWidths {
	tw := tableWidths{No: 20, Desc: 135, Remark: 35}
	switch {
	case numDevices > 8:
		tw.Desc, tw.Remark = 100, 28
	case numDevices > 5:
		tw.Desc = 115
	}
	tw.Device, tw.Overflow = deviceColumnWidth(ContentWidth-tw.No-tw.Desc-tw.Remark, numDevices)
	return tw
}

// empPlatformWidths always lays out eight plunger columns; fewer
// recorded devices still print the full grid.
func empPlatformWidths(numDevices int) tableWidths {
	if numDevices <= 0 {
		numDevices = 8
	}
	tw := tableWidths{No: 22, Desc: 155, Remark: 35}
	tw.Device, tw.Overflow = deviceColumnWidth(ContentWidth-tw.No-tw.Desc-tw.Remark, numDevices)
	return tw
}

// empSimpleWidths is the single-result table used for the control box
// and surge protection sections.
func empSimpleWidths() tableWidths {
	return tableWidths{No: 25, Desc: 280, Device: 60, Remark: 160}
}
