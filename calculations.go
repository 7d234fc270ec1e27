package bloomkit

// The false positive probabilities below were computed for a standard Bloom
// filter with the given number of buckets per element (row) and hash
// functions (column). Rows 0 and 1 are placeholders.
const (
	minBuckets = 2
	maxBuckets = 15
	minK       = 1
	maxK       = 8
)

var optKPerBuckets = [...]uint{
	1, // dummy K for 0 buckets per element
	1, // dummy K for 1 buckets per element
	1, 2, 3, 3, 4, 5, 5, 6, 7, 8, 8, 8, 8, 8,
}

var probs = [...][]float64{
	{1.0},      // dummy row representing 0 buckets per element
	{1.0, 1.0}, // dummy row representing 1 buckets per element
	{1.0, 0.393, 0.400},
	{1.0, 0.283, 0.237, 0.253},
	{1.0, 0.221, 0.155, 0.147, 0.160},
	{1.0, 0.181, 0.109, 0.092, 0.092, 0.101}, // 5
	{1.0, 0.154, 0.0804, 0.0609, 0.0561, 0.0578, 0.0638},
	{1.0, 0.133, 0.0618, 0.0423, 0.0359, 0.0347, 0.0364},
	{1.0, 0.118, 0.0489, 0.0306, 0.024, 0.0217, 0.0216, 0.0229},
	{1.0, 0.105, 0.0397, 0.0228, 0.0166, 0.0141, 0.0133, 0.0135, 0.0145},
	{1.0, 0.0952, 0.0329, 0.0174, 0.0118, 0.00943, 0.00844, 0.00819, 0.00846}, // 10
	{1.0, 0.0869, 0.0276, 0.0136, 0.00864, 0.0065, 0.00552, 0.00513, 0.00509},
	{1.0, 0.08, 0.0236, 0.0108, 0.00646, 0.00459, 0.00371, 0.00329, 0.00314},
	{1.0, 0.074, 0.0203, 0.00875, 0.00492, 0.00332, 0.00255, 0.00217, 0.00199},
	{1.0, 0.0689, 0.0177, 0.00718, 0.00381, 0.00244, 0.00179, 0.00146, 0.00129},
	{1.0, 0.0645, 0.0156, 0.00596, 0.003, 0.00183, 0.00128, 0.001, 0.000852}, // 15
}

// BloomSpecification is the sizing of a filter: the number of buckets to
// allocate per expected element and the number of hash functions to use.
type BloomSpecification struct {
	BucketsPerElement uint
	K                 uint
}

// FalsePositiveRate returns the expected false positive probability of a
// filter built with this specification
func (spec BloomSpecification) FalsePositiveRate() float64 {
	bpe, k := spec.BucketsPerElement, spec.K
	if bpe > maxBuckets {
		bpe = maxBuckets
	}
	if k >= uint(len(probs[bpe])) {
		k = uint(len(probs[bpe])) - 1
	}
	return probs[bpe][k]
}

// ComputeBestK returns the number of hash functions giving the lowest false
// positive rate for _bucketsPerElement_
func ComputeBestK(bucketsPerElement uint) uint {
	if bucketsPerElement >= uint(len(optKPerBuckets)) {
		return optKPerBuckets[len(optKPerBuckets)-1]
	}
	return optKPerBuckets[bucketsPerElement]
}

// ComputeBucketsAndK returns the smallest number of buckets per element, and
// the smallest K for it, whose false positive probability does not exceed
// _maxFalsePosProb_. Probabilities outside the table's range are clamped to
// its cheapest or most precise entry.
func ComputeBucketsAndK(maxFalsePosProb float64) BloomSpecification {
	if maxFalsePosProb >= probs[minBuckets][minK] {
		return BloomSpecification{minBuckets, optKPerBuckets[minBuckets]}
	}
	if maxFalsePosProb < probs[maxBuckets][maxK] {
		return BloomSpecification{maxBuckets, optKPerBuckets[maxBuckets]}
	}

	bucketsPerElement := uint(minBuckets)
	k := optKPerBuckets[minBuckets]
	for probs[bucketsPerElement][k] > maxFalsePosProb {
		bucketsPerElement++
		k = optKPerBuckets[bucketsPerElement]
	}
	// enough buckets; use fewer hashes if precision allows
	for k > minK && probs[bucketsPerElement][k-1] <= maxFalsePosProb {
		k--
	}
	return BloomSpecification{bucketsPerElement, k}
}
