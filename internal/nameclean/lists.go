package nameclean

// These lists are carried over verbatim from the original BlakeGUI name
// cleaner (intelligent_phone_formatter_v2.py::_clean_name_for_zabasearch).
// They are tuned to South Florida property-owner records; do not add to
// them speculatively.

var businessSuffixes = map[string]bool{
	"LLC": true, "INC": true, "CORP": true, "LTD": true, "CO": true,
	"COMPANY": true, "TRUST": true, "TR": true, "REV TR": true, "LIV TR": true,
	"FAM TR": true, "ESTATE": true, "PROPERTIES": true, "INVESTMENTS": true,
	"ENTERPRISES": true, "HOLDINGS": true, "GROUP": true, "ASSOCIATES": true,
}

var titles = map[string]bool{
	"MR": true, "MRS": true, "MS": true, "DR": true, "PROF": true,
	"REV": true, "FATHER": true, "SISTER": true, "BROTHER": true,
	"PASTOR": true, "MINISTER": true,
}

var generationalSuffixes = map[string]bool{
	"JR": true, "SR": true, "III": true, "IV": true, "V": true, "VI": true,
	"VII": true, "VIII": true, "IX": true, "X": true,
	"1ST": true, "2ND": true, "3RD": true, "4TH": true, "5TH": true,
	"JUNIOR": true, "SENIOR": true, "ESQ": true, "ESQUIRE": true,
	"PHD": true, "MD": true, "DDS": true, "DO": true, "RN": true, "CPA": true,
}

var middleIndicators = map[string]bool{
	"NMI": true, "NMN": true, "NONE": true, "N/A": true, "NA": true,
}

// namePrefixesToRemove are multi-word surname lead tokens: when a surname
// begins with one of these, it is grouped with the following token rather
// than treated as a standalone first/last name component.
var namePrefixesToRemove = map[string]bool{
	"DE": true, "DEL": true, "DER": true, "LA": true, "LE": true,
	"VAN": true, "VON": true, "MAC": true, "MC": true, "O'": true,
	"ST": true, "SAN": true, "SANTA": true,
}

// commonSurnames is used to decide which comma-free token sequence is
// "LAST FIRST" vs "FIRST LAST" when no comma is present in the source.
var commonSurnames = map[string]bool{
	"SMITH": true, "JOHNSON": true, "WILLIAMS": true, "BROWN": true, "JONES": true,
	"GARCIA": true, "MILLER": true, "DAVIS": true, "RODRIGUEZ": true, "MARTINEZ": true,
	"HERNANDEZ": true, "LOPEZ": true, "GONZALEZ": true, "WILSON": true, "ANDERSON": true,
	"THOMAS": true, "TAYLOR": true, "MOORE": true, "JACKSON": true, "MARTIN": true,
	"LEE": true, "PEREZ": true, "THOMPSON": true, "WHITE": true, "HARRIS": true,
	"SANCHEZ": true, "CLARK": true, "RAMIREZ": true, "LEWIS": true, "ROBINSON": true,
	"WALKER": true, "YOUNG": true, "ALLEN": true, "KING": true, "WRIGHT": true,
	"SCOTT": true, "TORRES": true, "NGUYEN": true, "HILL": true, "FLORES": true,
	"GREEN": true, "ADAMS": true, "NELSON": true, "BAKER": true, "HALL": true,
	"RIVERA": true, "CAMPBELL": true, "MITCHELL": true, "CARTER": true, "ROBERTS": true,
	"GOMEZ": true, "PHILLIPS": true, "EVANS": true, "TURNER": true, "DIAZ": true,
	"PARKER": true, "CRUZ": true, "EDWARDS": true, "COLLINS": true, "REYES": true,
	"STEWART": true, "MORRIS": true, "MORALES": true, "MURPHY": true, "COOK": true,
	"ROGERS": true, "GUTIERREZ": true, "ORTIZ": true, "MORGAN": true, "COOPER": true,
	"PETERSON": true, "BAILEY": true, "REED": true, "KELLY": true, "HOWARD": true,
	"RAMOS": true, "KIM": true, "COX": true, "WARD": true, "RICHARDSON": true,
	"WATSON": true, "BROOKS": true, "CHAVEZ": true, "WOOD": true, "JAMES": true,
	"BENNETT": true, "GRAY": true, "MENDOZA": true, "RUIZ": true, "HUGHES": true,
	"PRICE": true, "ALVAREZ": true, "CASTILLO": true, "SANDERS": true, "PATEL": true,
	"MYERS": true, "LONG": true, "ROSS": true, "FOSTER": true, "JIMENEZ": true,
	"WELTY": true, "DUTIL": true, "SIVONGSAY": true, "PEDERSEN": true, "ALMANZAR": true,
	"NUNEZ": true, "MASTERS": true, "SAUTEL": true, "KRISHNA": true, "OCONNOR": true,
	"MCDONALD": true, "OLEARY": true, "SULLIVAN": true, "OBRIEN": true, "KENNEDY": true,
	"RYAN": true, "WALSH": true, "BYRNE": true,
}

var commonFirstNames = map[string]bool{
	"JAMES": true, "JOHN": true, "ROBERT": true, "MICHAEL": true, "WILLIAM": true,
	"DAVID": true, "RICHARD": true, "JOSEPH": true, "THOMAS": true, "CHARLES": true,
	"CHRISTOPHER": true, "DANIEL": true, "MATTHEW": true, "ANTHONY": true, "MARK": true,
	"DONALD": true, "STEVEN": true, "PAUL": true, "ANDREW": true, "JOSHUA": true,
	"KENNETH": true, "KEVIN": true, "BRIAN": true, "GEORGE": true, "EDWARD": true,
	"RONALD": true, "TIMOTHY": true, "JASON": true, "JEFFREY": true, "RYAN": true,
	"JACOB": true, "GARY": true, "NICHOLAS": true, "ERIC": true, "JONATHAN": true,
	"STEPHEN": true, "LARRY": true, "JUSTIN": true, "SCOTT": true, "BRANDON": true,
	"BENJAMIN": true, "SAMUEL": true, "RAYMOND": true, "GREGORY": true, "ALEXANDER": true,
	"PATRICK": true, "JACK": true, "DENNIS": true, "JERRY": true, "TYLER": true,
	"MARY": true, "PATRICIA": true, "JENNIFER": true, "LINDA": true, "BARBARA": true,
	"ELIZABETH": true, "SUSAN": true, "JESSICA": true, "SARAH": true, "KAREN": true,
	"NANCY": true, "LISA": true, "BETTY": true, "MARGARET": true, "SANDRA": true,
	"ASHLEY": true, "KIMBERLY": true, "EMILY": true, "DONNA": true, "MICHELLE": true,
	"DOROTHY": true, "CAROL": true, "AMANDA": true, "MELISSA": true, "DEBORAH": true,
	"STEPHANIE": true, "REBECCA": true, "SHARON": true, "LAURA": true, "CYNTHIA": true,
	"NELSON": true, "LEONARD": true, "CHRISTINA": true, "ART": true, "JOSE": true,
	"DONNALEE": true, "JUAN": true, "DEBRA": true,
}

// personIndicators is the distinct list used to rescue a business-pattern
// match that is actually a person (e.g. "WILLIAM TRUST JR"). It overlaps
// with, but is not the same list as, commonFirstNames.
var personIndicators = map[string]bool{
	"JOHN": true, "JANE": true, "ROBERT": true, "MARY": true, "JAMES": true,
	"PATRICIA": true, "MICHAEL": true, "LINDA": true, "WILLIAM": true, "ELIZABETH": true,
	"DAVID": true, "BARBARA": true, "RICHARD": true, "SUSAN": true, "JOSEPH": true,
	"JESSICA": true, "THOMAS": true, "SARAH": true, "CHARLES": true, "KAREN": true,
	"CHRISTOPHER": true, "NANCY": true, "DANIEL": true, "LISA": true, "MATTHEW": true,
	"BETTY": true, "ANTHONY": true, "HELEN": true, "MARK": true, "SANDRA": true,
	"DONALD": true, "DONNA": true, "STEVEN": true, "CAROL": true, "PAUL": true,
	"RUTH": true, "ANDREW": true, "SHARON": true, "JOSHUA": true, "MICHELLE": true,
	"KENNETH": true, "LAURA": true, "KEVIN": true, "BRIAN": true, "KIMBERLY": true,
	"GEORGE": true, "DEBORAH": true, "TIMOTHY": true, "DOROTHY": true, "RONALD": true,
	"JASON": true, "EDWARD": true, "JEFFREY": true, "RYAN": true, "JACOB": true,
	"GARY": true, "NICHOLAS": true, "ERIC": true, "JONATHAN": true, "STEPHEN": true,
	"LARRY": true, "JUSTIN": true, "SCOTT": true, "BRANDON": true, "BENJAMIN": true,
	"SAMUEL": true, "GREGORY": true, "ALEXANDER": true, "FRANK": true, "RAYMOND": true,
	"JACK": true, "DENNIS": true, "JERRY": true, "TYLER": true, "AARON": true,
	"JOSE": true, "HENRY": true, "ADAM": true, "DOUGLAS": true, "NATHAN": true,
	"PETER": true, "ZACHARY": true, "KYLE": true, "WALTER": true, "HAROLD": true,
	"CARL": true,
}
