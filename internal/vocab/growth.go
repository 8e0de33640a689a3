package vocab

import (
	"sort"

	"github.com/mesh-intelligence/firstwords/pkg/types"
)

// Aggregate buckets a child's words by age in whole calendar months at the
// time each word was logged and returns the cumulative growth series in
// ascending age order.
//
// The bucket is types.MonthsBetween(birthday, date_added); the day of
// month is ignored and words logged before the birthday land in negative
// buckets. Within a bucket words keep their logged order.
//
// ok is false when the child has no birthday. An empty vocabulary with a
// birthday yields an empty series and ok == true.
func Aggregate(child types.Child) (points []types.GrowthPoint, ok bool) {
	if !child.HasBirthday() {
		return nil, false
	}
	birthday := *child.Birthday

	buckets := make(map[int][]string)
	var ages []int
	for _, w := range child.Words {
		age := types.MonthsBetween(birthday, w.DateAdded)
		if _, exists := buckets[age]; !exists {
			ages = append(ages, age)
		}
		buckets[age] = append(buckets[age], w.Word)
	}
	sort.Ints(ages)

	points = make([]types.GrowthPoint, 0, len(ages))
	total := 0
	for _, age := range ages {
		newWords := buckets[age]
		total += len(newWords)
		points = append(points, types.GrowthPoint{
			AgeMonths:       age,
			CumulativeTotal: total,
			NewWordCount:    len(newWords),
			NewWords:        newWords,
		})
	}
	return points, true
}
