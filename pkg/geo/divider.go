package geo

// xdivider19 holds, per 2^19 microdegree latitude band, the number of
// quarter microdegrees of longitude spanning the same ground distance as 90
// microdegrees of latitude in that band. Near the pole the values are
// wider than 360/cos(lat).
var xdivider19 = [172]int{
	360, 360, 360, 360, 360, 360, 361, 361, 361, 361,
	362, 362, 362, 363, 363, 363, 364, 364, 365, 366,
	366, 367, 367, 368, 369, 370, 370, 371, 372, 373,
	374, 375, 376, 377, 378, 379, 380, 382, 383, 384,
	386, 387, 388, 390, 391, 393, 394, 396, 398, 399,
	401, 403, 405, 407, 409, 411, 413, 415, 417, 420,
	422, 424, 427, 429, 432, 435, 437, 440, 443, 446,
	449, 452, 455, 459, 462, 465, 469, 473, 476, 480,
	484, 488, 492, 496, 501, 505, 510, 515, 520, 525,
	530, 535, 540, 546, 552, 558, 564, 570, 577, 583,
	590, 598, 605, 612, 620, 628, 637, 645, 654, 664,
	673, 683, 693, 704, 715, 726, 738, 751, 763, 777,
	791, 805, 820, 836, 852, 869, 887, 906, 925, 946,
	968, 990, 1014, 1039, 1066, 1094, 1123, 1154, 1187, 1223,
	1260, 1300, 1343, 1389, 1438, 1490, 1547, 1609, 1676, 1749,
	1829, 1916, 2013, 2119, 2238, 2371, 2521, 2691, 2887, 3114,
	3381, 3700, 4088, 4572, 5190, 6012, 7153, 8848, 11622, 16925,
	31122, 172044,
}

// XDivider4 returns the width, in quarter microdegrees, of a cell whose
// height is 90 microdegrees, for a rectangle spanning [minLat,maxLat).
// It uses the latitude closest to the equator.
func XDivider4(minLat, maxLat int) int {
	if minLat >= 0 {
		return xdivider19[band(minLat)]
	}
	if maxLat >= 0 {
		return xdivider19[0]
	}
	return xdivider19[band(-maxLat)]
}

func band(lat int) int {
	b := lat >> 19
	if b >= len(xdivider19) {
		b = len(xdivider19) - 1
	}
	return b
}
