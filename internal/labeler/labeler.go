// Package labeler names the non-"kind" columns of a record by position.
package labeler

// KindKey is the event key that always holds field 0 of a record.
const KindKey = "kind"

// MissedLabel is returned for every position without a fixed label.
const MissedLabel = "missed"

// labels is indexed by 1-based position; index 0 is unused.
var labels = [...]string{
	"",
	"one",
	"two",
	"three",
	"four",
	"five",
	"six",
	"seven",
	"eight",
	"nine",
}

// Label returns the fixed word for a 1-based column position.
// Positions 1..9 map to "one".."nine"; anything else maps to MissedLabel.
func Label(position int) string {
	if position < 1 || position >= len(labels) {
		return MissedLabel
	}
	return labels[position]
}

// Rank orders event keys for printing: KindKey first, then the labels in
// position order, then MissedLabel, then any unknown key.
func Rank(key string) int {
	if key == KindKey {
		return 0
	}
	for i := 1; i < len(labels); i++ {
		if labels[i] == key {
			return i
		}
	}
	if key == MissedLabel {
		return len(labels)
	}
	return len(labels) + 1
}
