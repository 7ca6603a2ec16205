package monarch

import (
	"context"
	"fmt"
	"time"

	"github.com/erikrubstein/monarch-api/pkg/graphql"
)

const getBudgetsDocument = `query Common_GetJointPlanningData($startDate: Date!, $endDate: Date!, $useLegacyGoals: Boolean!, $useV2Goals: Boolean!) {
  budgetData(startMonth: $startDate, endMonth: $endDate) {
    monthlyAmountsByCategory {
      category {
        id
        __typename
      }
      monthlyAmounts {
        month
        plannedCashFlowAmount
        plannedSetAsideAmount
        actualAmount
        remainingAmount
        previousMonthRolloverAmount
        rolloverType
        __typename
      }
      __typename
    }
    monthlyAmountsByCategoryGroup {
      categoryGroup {
        id
        __typename
      }
      monthlyAmounts {
        month
        plannedCashFlowAmount
        actualAmount
        remainingAmount
        previousMonthRolloverAmount
        rolloverType
        __typename
      }
      __typename
    }
    monthlyAmountsForFlexExpense {
      budgetVariability
      monthlyAmounts {
        month
        plannedCashFlowAmount
        actualAmount
        remainingAmount
        previousMonthRolloverAmount
        rolloverType
        __typename
      }
      __typename
    }
    totalsByMonth {
      month
      totalIncome {
        plannedAmount
        actualAmount
        remainingAmount
        previousMonthRolloverAmount
        __typename
      }
      totalExpenses {
        plannedAmount
        actualAmount
        remainingAmount
        previousMonthRolloverAmount
        __typename
      }
      totalFixedExpenses {
        plannedAmount
        actualAmount
        remainingAmount
        previousMonthRolloverAmount
        __typename
      }
      totalNonMonthlyExpenses {
        plannedAmount
        actualAmount
        remainingAmount
        previousMonthRolloverAmount
        __typename
      }
      totalFlexibleExpenses {
        plannedAmount
        actualAmount
        remainingAmount
        previousMonthRolloverAmount
        __typename
      }
      __typename
    }
    __typename
  }
  categoryGroups {
    id
    name
    order
    type
    budgetVariability
    groupLevelBudgetingEnabled
    categories {
      id
      name
      icon
      order
      budgetVariability
      rolloverPeriod {
        id
        startMonth
        endMonth
        startingBalance
        targetAmount
        frequency
        type
        __typename
      }
      __typename
    }
    __typename
  }
  goalsV2(useLegacyGoals: $useLegacyGoals, useV2Goals: $useV2Goals) {
    id
    name
    archivedAt
    completedAt
    priority
    imageStorageProvider
    imageStorageProviderId
    plannedContributions(startMonth: $startDate, endMonth: $endDate) {
      id
      month
      amount
      __typename
    }
    monthlyContributionSummaries(startMonth: $startDate, endMonth: $endDate) {
      month
      sum
      __typename
    }
    __typename
  }
}`

const setBudgetAmountDocument = `mutation Common_UpdateBudgetItem($input: UpdateOrCreateBudgetItemMutationInput!) {
  updateOrCreateBudgetItem(input: $input) {
    budgetItem {
      id
      budgetAmount
      __typename
    }
    __typename
  }
}`

// GetBudgets returns the planning data for the window, months inclusive.
// Empty dates mean from the start of last month through the end of next
// month, matching the service's own planning view.
func (c *Client) GetBudgets(ctx context.Context, startDate, endDate string) (map[string]any, error) {
	if (startDate == "") != (endDate == "") {
		return nil, fmt.Errorf("budgets query needs both startDate and endDate or neither")
	}
	if startDate == "" {
		now := time.Now()
		startDate = monthStart(now.AddDate(0, -1, 0))
		endDate = monthEnd(now.AddDate(0, 1, 0))
	}

	return c.exec.Execute(ctx, graphql.Operation{
		Name:     "Common_GetJointPlanningData",
		Document: getBudgetsDocument,
		Variables: map[string]any{
			"startDate":      startDate,
			"endDate":        endDate,
			"useLegacyGoals": false,
			"useV2Goals":     true,
		},
	})
}

// BudgetAmountInput targets one category or one category group for one
// month. Exactly one of CategoryID and CategoryGroupID must be set.
type BudgetAmountInput struct {
	Amount          float64
	CategoryID      string
	CategoryGroupID string
	StartDate       string // YYYY-MM-DD, first of the month, current month when empty
	ApplyToFuture   bool   // also set every later month
}

// SetBudgetAmount sets the planned amount for a budget item. A zero amount
// clears the item.
func (c *Client) SetBudgetAmount(ctx context.Context, input BudgetAmountInput) (map[string]any, error) {
	if (input.CategoryID == "") == (input.CategoryGroupID == "") {
		return nil, fmt.Errorf("budget amount needs exactly one of CategoryID and CategoryGroupID")
	}

	startDate := input.StartDate
	if startDate == "" {
		startDate = monthStart(time.Now())
	}

	payload := map[string]any{
		"amount":        input.Amount,
		"startDate":     startDate,
		"timeframe":     "month",
		"applyToFuture": input.ApplyToFuture,
	}
	if input.CategoryID != "" {
		payload["categoryId"] = input.CategoryID
	} else {
		payload["categoryGroupId"] = input.CategoryGroupID
	}

	return c.exec.Execute(ctx, graphql.Operation{
		Name:      "Common_UpdateBudgetItem",
		Document:  setBudgetAmountDocument,
		Variables: map[string]any{"input": payload},
	})
}
