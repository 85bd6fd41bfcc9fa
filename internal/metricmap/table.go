package metricmap

import (
	"strconv"
	"strings"

	"codeberg.org/cryolab/fridgewatch/internal/logdir"
)

// Scale returns a conversion that multiplies the raw reading by factor.
func Scale(factor float64) Conversion {
	return func(raw string) (float64, error) {
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return 0, err
		}

		return v * factor, nil
	}
}

// Identity is the no-op conversion: the raw reading is already in the
// declared unit.
var Identity = Scale(1)

// OnOff converts the controller's on/off indicator strings to 0/1.
func OnOff(raw string) (float64, error) {
	switch strings.ToLower(raw) {
	case "1", "on", "true":
		return 1, nil
	case "0", "off", "false":
		return 0, nil
	}

	return 0, strconv.ErrSyntax
}

func statusEntry(raw, suffix, grafanaUnit, group, help string) (Key, Descriptor) {
	return Key{Kind: logdir.KindStatus, Raw: raw}, Descriptor{
		Name:        raw + suffix,
		Help:        help + " [Status file] (" + raw + ")",
		UnitSuffix:  suffix,
		GrafanaUnit: grafanaUnit,
		Group:       group,
		Convert:     Identity,
	}
}

// DefaultTable returns the built-in metric metadata. Callers get a fresh
// table each time; a deployment with different sensor wiring can start from
// this and override entries before handing the table to NewMapper.
//
// Channel-to-location labels for the CH* entries follow the vendor's default
// sensor placement and are data here, not behavior; adjust the table, never
// the mapper, when a probe is rewired.
func DefaultTable() Table {
	t := Table{}

	add := func(k Key, d Descriptor) {
		t[k] = d
	}

	// Status file: compressor pressures
	add(statusEntry("cpahp", "_mbar", "pressurembar", "compressor", "Compressor high pressure"))
	add(statusEntry("cpahpa", "_mbar", "pressurembar", "compressor", "Compressor high pressure actual"))
	add(statusEntry("cpalp", "_mbar", "pressurembar", "compressor", "Compressor low pressure"))
	add(statusEntry("cpalpa", "_mbar", "pressurembar", "compressor", "Compressor low pressure actual"))
	add(statusEntry("cpadp", "_mbar", "pressurembar", "compressor", "Compressor differential pressure"))

	// Status file: compressor temperatures
	add(statusEntry("cpatempwi", "_celsius", "celsius", "compressor", "Compressor water inlet temperature"))
	add(statusEntry("cpatempwo", "_celsius", "celsius", "compressor", "Compressor water outlet temperature"))
	add(statusEntry("cpatempo", "_celsius", "celsius", "compressor", "Compressor output temperature"))
	add(statusEntry("cpatemph", "_celsius", "celsius", "compressor", "Compressor helium temperature"))

	// Status file: compressor electrical / runtime
	add(statusEntry("cpacurrent", "_amperes", "amp", "compressor", "Compressor motor current"))
	add(statusEntry("cpahours", "_hours", "h", "compressor", "Compressor total operating hours"))

	// Status file: turbo pump (TC400)
	add(statusEntry("tc400actualspd", "_hz", "hertz", "turbo_pump", "Turbo pump actual speed"))
	add(statusEntry("tc400drvpower", "_watts", "watt", "turbo_pump", "Turbo pump drive power"))

	// Status file: scroll pump (nXDS)
	add(statusEntry("nxdspt", "", "short", "scroll_pump", "Scroll pump tip temperature raw sensor value"))
	add(statusEntry("nxdsct", "", "short", "scroll_pump", "Scroll pump controller temperature raw sensor value"))
	add(statusEntry("nxdsf", "_hz", "hertz", "scroll_pump", "Scroll pump frequency"))
	add(statusEntry("nxdstrs", "_seconds", "s", "scroll_pump", "Scroll pump running time"))

	// Status file: control pressure (PCU / probe control)
	add(statusEntry("ctrl_pres", "_mbar", "pressurembar", "probe_control", "Control pressure"))

	// Known temperature channels. CH6 and CH9 log in milli-Kelvin and are
	// scaled to Kelvin here; the remaining channels log Kelvin directly.
	addChannel(t, 1, "50K flange", Identity)
	addChannel(t, 2, "4K flange", Identity)
	addChannel(t, 5, "Still", Identity)
	addChannel(t, 6, "MXC (mixing chamber)", Scale(1e-3))
	addChannel(t, 9, "FSE (fridge sample environment)", Scale(1e-3))

	// Flowmeter
	add(Key{Kind: logdir.KindFlowmeter, Raw: "flowmeter"}, Descriptor{
		Name:        "flowmeter_mmol_per_s",
		Help:        "Mixture flow rate [Flowmeter file] (flowmeter)",
		UnitSuffix:  "_mmol_per_s",
		GrafanaUnit: "moles",
		Group:       "flow",
		Convert:     Identity,
	})

	// Sample-space heaters, keyed by column position
	for i := 1; i <= 4; i++ {
		raw := "heater_" + strconv.Itoa(i)
		add(Key{Kind: logdir.KindHeaters, Raw: raw}, Descriptor{
			Name:        raw + "_watts",
			Help:        "Heater " + strconv.Itoa(i) + " power [Heaters file] (" + raw + ")",
			UnitSuffix:  "_watts",
			GrafanaUnit: "watt",
			Group:       "heaters",
			Convert:     Identity,
		})
	}

	// Maxigauge: six pressure positions
	for i := 1; i <= 6; i++ {
		raw := "maxigauge_ch" + strconv.Itoa(i)
		add(Key{Kind: logdir.KindMaxigauge, Raw: raw}, Descriptor{
			Name:        raw + "_pressure_mbar",
			Help:        "Maxigauge CH" + strconv.Itoa(i) + " pressure [maxigauge file] (" + raw + ")",
			UnitSuffix:  "_pressure_mbar",
			GrafanaUnit: "pressurembar",
			Group:       "maxigauge",
			Convert:     Identity,
		})
	}

	return t
}

func addChannel(t Table, n int, location string, tempConvert Conversion) {
	ch := "ch" + strconv.Itoa(n)
	t[Key{Kind: logdir.KindChannelTemp, Raw: ch + "_t"}] = Descriptor{
		Name:        ch + "_t_kelvin",
		Help:        location + " temperature [CH" + strconv.Itoa(n) + " T file] (" + ch + "_t)",
		UnitSuffix:  "_kelvin",
		GrafanaUnit: "kelvin",
		Group:       "fridge_temps",
		Convert:     tempConvert,
	}
	t[Key{Kind: logdir.KindChannelRes, Raw: ch + "_r"}] = Descriptor{
		Name:        ch + "_r_ohms",
		Help:        location + " resistance [CH" + strconv.Itoa(n) + " R file] (" + ch + "_r)",
		UnitSuffix:  "_ohms",
		GrafanaUnit: "ohm",
		Group:       "fridge_resistance",
		Convert:     Identity,
	}
}
