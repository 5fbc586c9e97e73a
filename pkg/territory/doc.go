// Package territory models the territories of the mapcode system and the
// boundary rectangles that define where each code construction applies.
//
// A Table is built once from a dataset and is read-only afterwards. Each
// territory owns a contiguous run of records in priority order; the last
// record is the outer bounding rectangle of the territory. Subdivisions of
// the parent countries (US, IN, CA, ...) may be addressed without their
// parent, in which case the parent list order and an optional context
// territory decide which one is meant.
package territory
