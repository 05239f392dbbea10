package count

import (
	"encoding/binary"
	"sort"

	"github.com/zeebo/xxh3"
)

// tieRank derives the tie-break rank for a candidate in a round. The rank
// depends only on (seed, round, candidate), so identical inputs always
// break ties the same way and the result stays re-derivable.
func tieRank(seed uint64, round, candidateID int) uint64 {
	var buf [24]byte
	binary.LittleEndian.PutUint64(buf[0:8], seed)
	binary.LittleEndian.PutUint64(buf[8:16], uint64(round))
	binary.LittleEndian.PutUint64(buf[16:24], uint64(candidateID))
	return xxh3.Hash(buf[:])
}

// orderTied sorts tied candidate IDs into the reproducible tie-break
// order: ascending tie rank, then ascending ID for a total order.
func orderTied(ids []int, seed uint64, round int) {
	sort.Slice(ids, func(i, j int) bool {
		ri, rj := tieRank(seed, round, ids[i]), tieRank(seed, round, ids[j])
		if ri != rj {
			return ri < rj
		}
		return ids[i] < ids[j]
	})
}
