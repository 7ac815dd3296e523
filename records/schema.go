// SPDX-License-Identifier: MIT

package records

import "strings"

// Default column names of the consolidated booking master table.
const (
	DefaultIDColumn           = "booking_id"
	DefaultTimestampColumn    = "booking_ts"
	DefaultAgencyColumn       = "agency_id"
	DefaultUserColumn         = "user_id"
	DefaultValueColumn        = "booking_value"
	DefaultLeadTimeColumn     = "lead_time_days"
	DefaultCancelledColumn    = "is_cancelled"
	DefaultDisputedColumn     = "is_disputed"
	DefaultSuspiciousColumn   = "suspicious_pax_domains"
	DefaultCancelDelayColumn  = "cancel_delay_days"
	DefaultDisputeDelayColumn = "dispute_delay_days"
	DefaultChargebackColumn   = "chargeback_amount"
	DefaultFinalLossColumn    = "final_loss_amount"
)

// Schema names the source columns for every Record field.
// Field names are matched exactly (after trimming surrounding spaces and a
// leading UTF-8 BOM on the header).
type Schema struct {
	ID           string `yaml:"id"`
	Timestamp    string `yaml:"timestamp"`
	Agency       string `yaml:"agency"`
	User         string `yaml:"user"`
	Value        string `yaml:"value"`
	LeadTime     string `yaml:"lead_time"`
	Cancelled    string `yaml:"cancelled"`
	Disputed     string `yaml:"disputed"`
	Suspicious   string `yaml:"suspicious"`
	CancelDelay  string `yaml:"cancel_delay"`
	DisputeDelay string `yaml:"dispute_delay"`
	Chargeback   string `yaml:"chargeback"`
	FinalLoss    string `yaml:"final_loss"`
}

// DefaultSchema returns the master-table column names.
func DefaultSchema() Schema {
	return Schema{
		ID:           DefaultIDColumn,
		Timestamp:    DefaultTimestampColumn,
		Agency:       DefaultAgencyColumn,
		User:         DefaultUserColumn,
		Value:        DefaultValueColumn,
		LeadTime:     DefaultLeadTimeColumn,
		Cancelled:    DefaultCancelledColumn,
		Disputed:     DefaultDisputedColumn,
		Suspicious:   DefaultSuspiciousColumn,
		CancelDelay:  DefaultCancelDelayColumn,
		DisputeDelay: DefaultDisputeDelayColumn,
		Chargeback:   DefaultChargebackColumn,
		FinalLoss:    DefaultFinalLossColumn,
	}
}

// Required lists the required column names in a fixed order.
func (s Schema) Required() []string {
	return []string{
		s.ID, s.Timestamp, s.Agency, s.User,
		s.Value, s.LeadTime,
		s.Cancelled, s.Disputed, s.Suspicious,
		s.CancelDelay, s.DisputeDelay, s.Chargeback, s.FinalLoss,
	}
}

// columnIndex maps each required column to its position in a header.
type columnIndex struct {
	id, ts, agency, user      int
	value, lead               int
	cancelled, disputed, susp int
	cancelDelay, disputeDelay int
	chargeback, finalLoss     int
}

// resolve validates header against the schema and returns column positions.
// The first missing column (in Required order) is reported.
func (s Schema) resolve(header []string) (columnIndex, error) {
	pos := make(map[string]int, len(header))
	for i, h := range header {
		h = strings.TrimSpace(strings.TrimPrefix(h, "\ufeff"))
		if _, dup := pos[h]; !dup {
			pos[h] = i
		}
	}
	for _, name := range s.Required() {
		if name == "" {
			return columnIndex{}, &SchemaError{Reason: "schema has an empty column name"}
		}
		if _, ok := pos[name]; !ok {
			return columnIndex{}, missingColumn(name)
		}
	}

	return columnIndex{
		id: pos[s.ID], ts: pos[s.Timestamp], agency: pos[s.Agency], user: pos[s.User],
		value: pos[s.Value], lead: pos[s.LeadTime],
		cancelled: pos[s.Cancelled], disputed: pos[s.Disputed], susp: pos[s.Suspicious],
		cancelDelay: pos[s.CancelDelay], disputeDelay: pos[s.DisputeDelay],
		chargeback: pos[s.Chargeback], finalLoss: pos[s.FinalLoss],
	}, nil
}

// Validate checks that header carries every required column.
func (s Schema) Validate(header []string) error {
	_, err := s.resolve(header)
	return err
}
