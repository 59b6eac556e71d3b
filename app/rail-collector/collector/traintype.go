package collector

import (
	"strings"

	"github.com/emeraldtransit/railwatch/business/data/rail"
)

// Train type heuristics. The feed never exposes an authoritative type, so
// three independent signals are combined: route keywords, code prefix and
// public message text. Route wins, then code, then message, first
// non-Unknown answer is kept.

// typeECode marks E-prefixed codes, which are Enterprise or DART depending
// on the route. The marker never escapes resolveTrainType.
const typeECode = "E_Code_Unknown"

// typeFromCode maps a train code prefix to a service type.
func typeFromCode(trainCode string) string {
	code := strings.ToUpper(strings.TrimSpace(trainCode))
	if code == "" {
		return rail.TypeUnknown
	}
	switch code[0] {
	case 'D':
		return rail.TypeDART
	case 'A':
		return rail.TypeIntercity
	case 'P':
		return rail.TypeFreight
	case 'E':
		return typeECode
	case 'C':
		return rail.TypeCommuter
	case 'M', 'L':
		return rail.TypeSpecial
	}
	return rail.TypeUnknown
}

var (
	belfastKeywords = []string{"BELFAST", "CENTRAL"}
	dublinKeywords  = []string{"DUBLIN", "CONNOLLY"}

	// dartStations covers the coastal DART corridor. A service with both
	// endpoints on it is classed as DART.
	dartStations = []string{
		"MALAHIDE", "PORTMARNOCK", "CLONGRIFFIN", "HOWTH", "SUTTON", "LAYTOWN",
		"BALBRIGGAN", "SKERRIES", "MOUNT MERRION", "BAYSIDE", "KILLESTER", "HARMONSTOWN",
		"RAHENY", "KILBARRACK", "CLONTARF", "CONNOLLY", "TARA STREET", "PEARSE", "GRAND CANAL",
		"LANSDOWNE", "SANDYMOUNT", "SYDNEY PARADE", "BOOTERSTOWN",
		"BLACKROCK", "SEAPOINT", "SALTHILL", "DUN LAOGHAIRE", "SANDYCOVE",
		"GLENAGEARY", "DALKEY", "KILLINEY", "SHANKILL", "BRAY", "GREYSTONES", "DROGHEDA",
	}

	majorCities     = []string{"CORK", "GALWAY", "LIMERICK", "WATERFORD", "SLIGO", "TRALEE"}
	dublinTerminals = []string{"CONNOLLY", "HEUSTON"}
)

// typeFromRoute classifies a service by its endpoints. Belfast-Dublin in
// either direction is the Enterprise; both endpoints on the DART corridor is
// DART; a major city paired with a Dublin terminal is Intercity; one Dublin
// terminal endpoint is Commuter; anything else with both endpoints known is
// Regional.
func typeFromRoute(origin, destination *string) string {
	if origin == nil || destination == nil {
		return rail.TypeUnknown
	}
	originUpper := strings.ToUpper(*origin)
	destUpper := strings.ToUpper(*destination)

	originBelfast := containsAny(originUpper, belfastKeywords)
	destBelfast := containsAny(destUpper, belfastKeywords)
	originDublin := containsAny(originUpper, dublinKeywords)
	destDublin := containsAny(destUpper, dublinKeywords)
	if (originBelfast && destDublin) || (originDublin && destBelfast) {
		return rail.TypeEnterprise
	}

	if containsAny(originUpper, dartStations) && containsAny(destUpper, dartStations) {
		return rail.TypeDART
	}

	originMajor := containsAny(originUpper, majorCities)
	destMajor := containsAny(destUpper, majorCities)
	originTerminal := containsAny(originUpper, dublinTerminals)
	destTerminal := containsAny(destUpper, dublinTerminals)
	if (originMajor && destTerminal) || (originTerminal && destMajor) {
		return rail.TypeIntercity
	}
	if originTerminal || destTerminal {
		return rail.TypeCommuter
	}
	return rail.TypeRegional
}

// typeFromMessage scans the public message for literal service type mentions.
func typeFromMessage(message string) string {
	upper := strings.ToUpper(message)
	switch {
	case strings.Contains(upper, "DART"):
		return rail.TypeDART
	case strings.Contains(upper, "ENTERPRISE"):
		return rail.TypeEnterprise
	case strings.Contains(upper, "INTERCITY"):
		return rail.TypeIntercity
	}
	return rail.TypeUnknown
}

// resolveTrainType runs the classifiers in precedence order and keeps the
// first answer that is not Unknown. The result is always one of the rail
// type labels, never empty.
func resolveTrainType(trainCode string, origin, destination *string, message string) string {
	classifiers := []func() string{
		func() string { return typeFromRoute(origin, destination) },
		func() string {
			t := typeFromCode(trainCode)
			if t == typeECode {
				return rail.TypeUnknown
			}
			return t
		},
		func() string { return typeFromMessage(message) },
	}
	for _, classify := range classifiers {
		if t := classify(); t != rail.TypeUnknown {
			return t
		}
	}
	return rail.TypeUnknown
}
