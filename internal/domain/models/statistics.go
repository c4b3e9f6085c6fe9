package models

type BoardStatistics struct {
	TotalUsers         int64
	TotalEmployers     int64
	TotalVacancies     int64
	ActiveVacancies    int64
	PendingVacancies   int64
	TotalSubscriptions int64
}

type EmployerStatistics struct {
	TotalVacancies    int64
	ActiveVacancies   int64
	PendingVacancies  int64
	PromotedVacancies int64
	TotalSpent        int64
}
