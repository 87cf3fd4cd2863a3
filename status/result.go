package status

// Result pairs an optional value with the Status of the operation that
// produced it. A Result never holds a value while its Status is an error.
type Result[T any] struct {
	value    T
	hasValue bool
	status   *Status
}

// Success returns a Result holding v and an empty Status.
func Success[T any](v T) Result[T] {
	return Result[T]{value: v, hasValue: true, status: New()}
}

// From returns a Result without value carrying the events of s. The
// Result takes ownership of s.
// s may hold only warnings; callers check HasValue before IsError.
func From[T any](s *Status) Result[T] {
	if s == nil {
		s = New()
	}
	return Result[T]{status: s}
}

// Into returns a Result carrying s and v. When s is an error the value is
// dropped and only the events are kept.
func Into[T any](s *Status, v T) Result[T] {
	if s.IsError() {
		return From[T](s)
	}
	if s == nil {
		s = New()
	}
	return Result[T]{value: v, hasValue: true, status: s}
}

// Fail returns a Result without value holding a single Error event.
func Fail[T any](source string, d Detail) Result[T] {
	return From[T](New(NewError(source, d)))
}

// Value returns the value or the zero value of T.
func (r Result[T]) Value() T {
	return r.value
}

// Get returns the value and whether it is present.
func (r Result[T]) Get() (T, bool) {
	return r.value, r.hasValue
}

func (r Result[T]) HasValue() bool {
	return r.hasValue
}

// Status returns a copy of the Status of r. It is never nil. Changing
// the copy does not affect r.
func (r Result[T]) Status() *Status {
	return r.status.Clone()
}

func (r Result[T]) IsError() bool {
	return r.status.IsError()
}

func (r Result[T]) IsWarning() bool {
	return r.status.IsWarning()
}

// IsSuccess reports whether r carries no events at all. A value with
// warnings is not a success.
func (r Result[T]) IsSuccess() bool {
	return r.status.IsSuccess()
}

// Unwrap converts r to Go's value/error convention. Warnings are not
// reported; a missing value without error events yields ErrNoValue.
func (r Result[T]) Unwrap() (T, error) {
	if err := r.status.Err(); err != nil {
		return r.value, err
	}
	if !r.hasValue {
		return r.value, ErrNoValue
	}
	return r.value, nil
}

// Collect converts every item with convert, merging a copy of upstream and
// then each item's Status in order. upstream is left untouched. Failed items
// are dropped. When some item failed but at least one succeeded, summary is
// added with overriding severity so the batch keeps its surviving values.
// When nothing succeeded and the merged Status is an error, the Result has
// no value.
func Collect[In, Out any](items []In, upstream *Status, convert func(In) Result[Out], summary Event) Result[[]Out] {
	st := upstream.Clone()
	out := make([]Out, 0, len(items))
	for _, item := range items {
		r := convert(item)
		st.AppendStatus(r.status)
		if v, ok := r.Get(); ok {
			out = append(out, v)
		}
	}
	if st.IsError() && len(out) > 0 {
		st.AddEventOverride(summary)
	}
	return Into(st, out)
}
