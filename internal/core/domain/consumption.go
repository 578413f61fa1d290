package domain

// DataConsumption tracks mobile data usage against the plan quota.
type DataConsumption struct {
	UsedBytes   int64   `json:"usedBytes"`
	TotalBytes  int64   `json:"totalBytes"`
	UsedGB      float64 `json:"usedGB"`
	TotalGB     float64 `json:"totalGB"`
	PercentUsed float64 `json:"percentUsed"`
}

// SMSConsumption tracks SMS usage.
type SMSConsumption struct {
	Used  int `json:"used"`
	Total int `json:"total"`
}

// VoiceConsumption tracks voice minutes. A nil TotalMinutes means unlimited.
type VoiceConsumption struct {
	UsedMinutes  int  `json:"usedMinutes"`
	TotalMinutes *int `json:"totalMinutes"`
}

// ConsumptionSnapshot is a point-in-time view of the billing cycle. Each
// refresh fully replaces the previous snapshot; there are no delta semantics.
type ConsumptionSnapshot struct {
	Data          DataConsumption  `json:"data"`
	SMS           SMSConsumption   `json:"sms"`
	Voice         VoiceConsumption `json:"voice"`
	CycleEndDate  string           `json:"cycleEndDate"`
	DaysRemaining int              `json:"daysRemaining"`
}
