package tx

// BucketID identifies an owned resource container within one program.
type BucketID uint32

// BucketRefID identifies a borrowed resource view within one program.
type BucketRefID uint32

// IDAllocator issues the bucket and bucket-ref id sequences for one builder.
// Both sequences are zero-based and strictly increasing: the n-th id handed
// out must match the ordinal position of the n-th declaration instruction in
// the finalized program, because the execution engine assigns storage to
// declarations in the exact order encountered. An allocator is never shared
// across builders.
type IDAllocator struct {
	nextBucket    uint32
	nextBucketRef uint32
}

// NewIDAllocator returns an allocator with both sequences at zero.
func NewIDAllocator() *IDAllocator {
	return &IDAllocator{}
}

// NewBucketID returns the next bucket id.
func (a *IDAllocator) NewBucketID() BucketID {
	id := BucketID(a.nextBucket)
	a.nextBucket++
	return id
}

// NewBucketRefID returns the next bucket-ref id.
func (a *IDAllocator) NewBucketRefID() BucketRefID {
	id := BucketRefID(a.nextBucketRef)
	a.nextBucketRef++
	return id
}
