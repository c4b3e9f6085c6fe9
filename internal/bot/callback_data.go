package bot

import (
	"fmt"
	"github.com/maxaizer/nearby-jobs-bot/internal/domain/models"
	"strconv"
	"strings"
)

const (
	pageAction        = "page"
	viewAction        = "view"
	contactAction     = "contact"
	approveAction     = "approve"
	rejectAction      = "reject"
	promoteAction     = "promote"
	buyAction         = "buy"
	deactivateAction  = "deactivate"
	resubscribeData   = "resubscribe"
	unsubscribeData   = "unsubscribe"
	callbackSeparator = ":"
)

func pageData(page int, minSalary *int64) string {
	var salary int64
	if minSalary != nil {
		salary = *minSalary
	}
	return fmt.Sprintf("%s:%d:%d", pageAction, page, salary)
}

func viewData(id int64) string       { return fmt.Sprintf("%s:%d", viewAction, id) }
func contactData(id int64) string    { return fmt.Sprintf("%s:%d", contactAction, id) }
func approveData(id int64) string    { return fmt.Sprintf("%s:%d", approveAction, id) }
func rejectData(id int64) string     { return fmt.Sprintf("%s:%d", rejectAction, id) }
func promoteData(id int64) string    { return fmt.Sprintf("%s:%d", promoteAction, id) }
func deactivateData(id int64) string { return fmt.Sprintf("%s:%d", deactivateAction, id) }

func buyData(id int64, promotionType models.PromotionType) string {
	return fmt.Sprintf("%s:%d:%s", buyAction, id, promotionType)
}

type callbackData struct {
	Action string
	ID     int64
	Args   []string
}

// parseCallbackData splits "action:id:args..."; actions without an id keep ID zero.
func parseCallbackData(data string) (callbackData, error) {
	parts := strings.Split(data, callbackSeparator)
	result := callbackData{Action: parts[0]}
	if len(parts) == 1 {
		return result, nil
	}

	id, err := strconv.ParseInt(parts[1], 10, 64)
	if err != nil {
		return callbackData{}, fmt.Errorf("invalid callback data %q: %w", data, err)
	}
	result.ID = id
	result.Args = parts[2:]
	return result, nil
}

// pageArgs reads the page number from ID and an optional salary floor from the args.
func (c callbackData) pageArgs() (int, *int64) {
	if len(c.Args) == 0 {
		return int(c.ID), nil
	}
	salary, err := strconv.ParseInt(c.Args[0], 10, 64)
	if err != nil || salary <= 0 {
		return int(c.ID), nil
	}
	return int(c.ID), &salary
}
