// SPDX-License-Identifier: MIT

package records_test

import "strings"

const header = "booking_id,booking_ts,agency_id,user_id,booking_value,lead_time_days," +
	"is_cancelled,is_disputed,suspicious_pax_domains,cancel_delay_days," +
	"dispute_delay_days,chargeback_amount,final_loss_amount"

// fiveBookings is the small batch used across the module's tests.
var fiveBookings = strings.Join([]string{
	header,
	"B1,2024-01-01 10:00:00,A1,U1,100,10,0,0,0,0,0,0,0",
	"B2,2024-01-02 10:00:00,A1,U2,200,20,1,0,0,3,0,0,0",
	"B3,2024-01-03 10:00:00,A2,U2,150,5,1,1,2,4,10,150,150",
	"B4,2024-01-20 10:00:00,A3,U3,1000,60,0,1,1,0,12,900,450",
	"B5,2024-01-04 10:00:00,A1,U1,120,,0,0,,,,,",
}, "\n") + "\n"
