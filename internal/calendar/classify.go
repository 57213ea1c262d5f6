package calendar

import (
	"strings"

	"github.com/julianstephens/punchcal/internal/models"
)

type DayCategory string

const (
	CategoryNormal            DayCategory = "normal"
	CategoryAbnormal          DayCategory = "abnormal"
	CategoryDayOff            DayCategory = "dayOff"
	CategoryPendingAdjustment DayCategory = "pendingAdjustment"
	CategoryPendingVirtual    DayCategory = "pendingVirtual"
	CategoryApprovedVirtual   DayCategory = "approvedVirtual"
)

// Reason codes as reported by the backend, without the STATUS_ prefix
const (
	ReasonPunchInMissing  = "PUNCH_IN_MISSING"
	ReasonPunchOutMissing = "PUNCH_OUT_MISSING"
	ReasonPunchNormal     = "PUNCH_NORMAL"
	ReasonRepairPending   = "REPAIR_PENDING"
	ReasonRepairApproved  = "REPAIR_APPROVED"

	reasonPrefix = "STATUS_"
)

// Classify maps a reason code to its display category.
// PUNCH_NORMAL shows as a day off; that is how the backend's calendar has always drawn it.
func Classify(reason string) DayCategory {
	switch strings.TrimPrefix(reason, reasonPrefix) {
	case "":
		return CategoryNormal
	case ReasonPunchInMissing, ReasonPunchOutMissing:
		return CategoryAbnormal
	case ReasonPunchNormal:
		return CategoryDayOff
	case ReasonRepairPending:
		return CategoryPendingVirtual
	case ReasonRepairApproved:
		return CategoryApprovedVirtual
	default:
		return CategoryPendingAdjustment
	}
}

// ClassifyDay classifies a day by its first record only.
func ClassifyDay(records []models.AttendanceRecord) DayCategory {
	if len(records) == 0 {
		return CategoryNormal
	}
	return Classify(records[0].Reason)
}

// ReasonKey returns the translation key of a reason code.
func ReasonKey(reason string) string {
	if reason == "" || strings.HasPrefix(reason, reasonPrefix) {
		return reason
	}
	return reasonPrefix + reason
}

// TranslationKey returns the catalog key of the category's legend label.
func (c DayCategory) TranslationKey() string {
	switch c {
	case CategoryAbnormal:
		return "CATEGORY_ABNORMAL"
	case CategoryDayOff:
		return "CATEGORY_DAY_OFF"
	case CategoryPendingAdjustment:
		return "CATEGORY_PENDING_ADJUSTMENT"
	case CategoryPendingVirtual:
		return "CATEGORY_PENDING_VIRTUAL"
	case CategoryApprovedVirtual:
		return "CATEGORY_APPROVED_VIRTUAL"
	default:
		return "CATEGORY_NORMAL"
	}
}
