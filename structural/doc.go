// Package structural builds the N×N booking-to-booking weight matrix.
//
// For every ordered pair (i, j) with i != j:
//
//	mask     = 1 if |t_i - t_j| <= τ days, else 0
//	identity = w_agency·[agency_i = agency_j] + w_user·[user_i = user_j]
//	kernel   = exp(-λ_value·|v_i - v_j|) · exp(-λ_lead·|l_i - l_j|)
//	outcome  = α·[cancel_i ∧ cancel_j] + β·[dispute_i ∧ dispute_j] + γ·[susp_i ∧ susp_j]
//	W(i, j)  = (kernel + outcome)·mask + identity
//
// and W(i, i) = 0. Identity bonuses ignore the temporal window.
//
// The matrix is never held whole: Build computes blocks of ChunkSize full rows
// and hands each block to a RowSink in ascending row order before computing the
// next. Peak working memory is workers × ChunkSize × N floats.
package structural
