package argoverse

// NumClasses is the number of annotated object classes, excluding the
// "ignore" label at id 0.
const NumClasses = 15

// labelNames is the fixed class table for Argoverse 3D annotations. Both the
// catalog-level lookup and per-object decoding read this one table, so the
// two directions cannot drift apart.
var labelNames = map[int]string{
	0:  "ignore",
	1:  "VEHICLE",
	2:  "PEDESTRIAN",
	3:  "ON_ROAD_OBSTACLE",
	4:  "LARGE_VEHICLE",
	5:  "BICYCLE",
	6:  "BICYCLIST",
	7:  "BUS",
	8:  "OTHER_MOVER",
	9:  "TRAILER",
	10: "MOTORCYCLIST",
	11: "MOPED",
	12: "MOTORCYCLE",
	13: "STROLLER",
	14: "EMERGENCY_VEHICLE",
	15: "ANIMAL",
}

var classIDs = func() map[string]int {
	m := make(map[string]int, len(labelNames))
	for id, name := range labelNames {
		m[name] = id
	}
	return m
}()

// ClassID returns the class id for a label name. Unrecognized names map to
// 0, the "ignore" class; the lookup never fails.
func ClassID(name string) int {
	return classIDs[name]
}
