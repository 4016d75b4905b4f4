// Package booking implements the controller behind a booking search form. A
// Form interprets a model.FormSchema, holds the current value of every field
// and exposes the interaction contract used by renderers:
//
//   - guest counters: Increment/Decrement (or the OnPlusClick/OnMinusClick
//     handlers) bounded by each option's min/max, with IsOptionDisabled
//     reporting the affordance state;
//   - location pickers: Search runs the field's searcher, cancelling the
//     previous lookup for the same field and discarding stale responses;
//     Select stores the chosen option;
//   - date pickers: SelectDate enforces the field minimum (today, a fixed
//     date, or the value of another date field);
//   - focus chaining: completing a field moves focus to its focusOnNext.
//
// Snapshot returns a read-only copy of the state at any time; the search
// action is never gated on completeness.
package booking
