// Package diagnostic collects the errors and warnings produced while
// mappings are compiled, scoped to the class and member they concern.
//
// Key capabilities:
//   - Per-class error isolation (ForClass)
//   - Stable diagnostic codes derived from the semantic errors
//   - Warnings for mappings that compile but look suspicious
//     (missing identifier, replaced tuplizer, skipped members)
//   - Log output through the shared levelled logger
package diagnostic
