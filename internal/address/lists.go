package address

// Lists carried over from original_source/address_matching_analyzer.py and
// address_format_handler.py, verbatim.

var streetTypeLong = map[string]string{
	"STREET":    "ST",
	"AVENUE":    "AVE",
	"DRIVE":     "DR",
	"COURT":     "CT",
	"PLACE":     "PL",
	"ROAD":      "RD",
	"CIRCLE":    "CIR",
	"BOULEVARD": "BLVD",
	"LANE":      "LN",
	"TERRACE":   "TER",
	"PARKWAY":   "PKWY",
	"HIGHWAY":   "HWY",
	"WAY":       "WAY",
}

var streetTypeShort = map[string]bool{
	"ST": true, "AVE": true, "DR": true, "CT": true, "PL": true,
	"RD": true, "CIR": true, "BLVD": true, "LN": true, "TER": true,
	"PKWY": true, "WAY": true, "HWY": true,
}

var directionLong = map[string]string{
	"NORTH":     "N",
	"SOUTH":     "S",
	"EAST":      "E",
	"WEST":      "W",
	"NORTHEAST": "NE",
	"NORTHWEST": "NW",
	"SOUTHEAST": "SE",
	"SOUTHWEST": "SW",
}

var directionShort = map[string]bool{
	"N": true, "S": true, "E": true, "W": true,
	"NE": true, "NW": true, "SE": true, "SW": true,
}

var ordinalWords = map[string]string{
	"FIRST": "1ST", "SECOND": "2ND", "THIRD": "3RD", "FOURTH": "4TH",
	"FIFTH": "5TH", "SIXTH": "6TH", "SEVENTH": "7TH", "EIGHTH": "8TH",
	"NINTH": "9TH", "TENTH": "10TH", "ELEVENTH": "11TH", "TWELFTH": "12TH",
	"THIRTEENTH": "13TH", "FOURTEENTH": "14TH", "FIFTEENTH": "15TH",
	"SIXTEENTH": "16TH", "SEVENTEENTH": "17TH", "EIGHTEENTH": "18TH",
	"NINETEENTH": "19TH", "TWENTIETH": "20TH", "TWENTY-FIRST": "21ST",
	"TWENTY-SECOND": "22ND", "TWENTY-THIRD": "23RD",
	"THIRTIETH": "30TH", "FORTIETH": "40TH", "FIFTIETH": "50TH",
}

// ordinalToWord is the reverse of ordinalWords, built at init time.
var ordinalToWord = reverse(ordinalWords)

func reverse(m map[string]string) map[string]string {
	out := make(map[string]string, len(m))
	for k, v := range m {
		out[v] = k
	}
	return out
}

// eligibleCities is the Broward-County municipality whitelist that governs
// StandardizedRow.eligible, carried verbatim from address_format_handler.py
// and bcpa_owner_search.py.
var eligibleCities = map[string]bool{
	"HOLLYWOOD": true, "FORT LAUDERDALE": true, "PEMBROKE PINES": true,
	"CORAL SPRINGS": true, "MIRAMAR": true, "SUNRISE": true, "PLANTATION": true,
	"DAVIE": true, "WESTON": true, "MARGATE": true, "TAMARAC": true,
	"COCONUT CREEK": true, "POMPANO BEACH": true, "LAUDERHILL": true,
	"LAUDERDALE LAKES": true, "WILTON MANORS": true, "OAKLAND PARK": true,
	"HALLANDALE BEACH": true, "COOPER CITY": true, "DEERFIELD BEACH": true,
	"LIGHTHOUSE POINT": true, "NORTH LAUDERDALE": true, "PARKLAND": true,
	"SEA RANCH LAKES": true, "SOUTHWEST RANCHES": true, "WEST PARK": true,
	"HILLSBORO BEACH": true, "LAZY LAKE": true, "PEMBROKE PARK": true,
	"HIGHLAND BEACH": true, "HOLLYWOOD BEACH": true, "FORT LAUDERDALE BEACH": true,
	"LAUDERDALE BY THE SEA": true,
}
