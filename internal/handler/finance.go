/*
 *    Copyright 2025 blockarchitech
 *
 *    Licensed under the Apache License, Version 2.0 (the "License");
 *    you may not use this file except in compliance with the License.
 *    You may obtain a copy of the License at
 *
 *        http://www.apache.org/licenses/LICENSE-2.0
 *
 *    Unless required by applicable law or agreed to in writing, software
 *    distributed under the License is distributed on an "AS IS" BASIS,
 *    WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 *    See the License for the specific language governing permissions and
 *    limitations under the License.
 */

package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"blockarchitech.com/lifeboard/internal/utils"
	"blockarchitech.com/lifeboard/internal/validation"
)

func (h *HttpHandlers) HandleListIncome(c *gin.Context) {
	ctx, span := h.Tracer.Start(c.Request.Context(), "HandleListIncome")
	defer span.End()

	entries, err := h.services.Finance.ListIncome(ctx)
	if err != nil {
		h.respondError(c, span, err, "Failed to list income")
		return
	}
	c.JSON(http.StatusOK, gin.H{"income": entries})
}

func (h *HttpHandlers) HandleAddIncome(c *gin.Context) {
	ctx, span := h.Tracer.Start(c.Request.Context(), "HandleAddIncome")
	defer span.End()

	var form validation.IncomeForm
	if !bindJSON(c, &form) {
		return
	}
	id, err := h.services.Finance.AddIncome(ctx, form)
	if err != nil {
		h.respondError(c, span, err, "Failed to add income")
		return
	}
	c.JSON(http.StatusCreated, gin.H{"id": id})
}

func (h *HttpHandlers) HandleStreamIncome(c *gin.Context) {
	ctx, span := h.Tracer.Start(c.Request.Context(), "HandleStreamIncome")
	defer span.End()

	p, err := h.services.Finance.WatchIncome(ctx)
	if err != nil {
		h.respondError(c, span, err, "Failed to watch income")
		return
	}
	streamProjection(h, c, span, p)
}

func (h *HttpHandlers) HandleDeleteIncome(c *gin.Context) {
	ctx, span := h.Tracer.Start(c.Request.Context(), "HandleDeleteIncome")
	defer span.End()

	if err := h.services.Finance.DeleteIncome(ctx, c.Param("id")); err != nil {
		h.respondError(c, span, err, "Failed to delete income")
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *HttpHandlers) HandleListSpending(c *gin.Context) {
	ctx, span := h.Tracer.Start(c.Request.Context(), "HandleListSpending")
	defer span.End()

	entries, err := h.services.Finance.ListSpending(ctx)
	if err != nil {
		h.respondError(c, span, err, "Failed to list spending")
		return
	}
	c.JSON(http.StatusOK, gin.H{"spending": entries})
}

func (h *HttpHandlers) HandleAddSpending(c *gin.Context) {
	ctx, span := h.Tracer.Start(c.Request.Context(), "HandleAddSpending")
	defer span.End()

	var form validation.SpendingForm
	if !bindJSON(c, &form) {
		return
	}
	id, err := h.services.Finance.AddSpending(ctx, form)
	if err != nil {
		h.respondError(c, span, err, "Failed to add spending")
		return
	}
	c.JSON(http.StatusCreated, gin.H{"id": id})
}

func (h *HttpHandlers) HandleStreamSpending(c *gin.Context) {
	ctx, span := h.Tracer.Start(c.Request.Context(), "HandleStreamSpending")
	defer span.End()

	p, err := h.services.Finance.WatchSpending(ctx)
	if err != nil {
		h.respondError(c, span, err, "Failed to watch spending")
		return
	}
	streamProjection(h, c, span, p)
}

func (h *HttpHandlers) HandleDeleteSpending(c *gin.Context) {
	ctx, span := h.Tracer.Start(c.Request.Context(), "HandleDeleteSpending")
	defer span.End()

	if err := h.services.Finance.DeleteSpending(ctx, c.Param("id")); err != nil {
		h.respondError(c, span, err, "Failed to delete spending")
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *HttpHandlers) HandleListRecurring(c *gin.Context) {
	ctx, span := h.Tracer.Start(c.Request.Context(), "HandleListRecurring")
	defer span.End()

	expenses, err := h.services.Finance.ListRecurring(ctx)
	if err != nil {
		h.respondError(c, span, err, "Failed to list recurring expenses")
		return
	}
	c.JSON(http.StatusOK, gin.H{"recurring": expenses})
}

func (h *HttpHandlers) HandleAddRecurring(c *gin.Context) {
	ctx, span := h.Tracer.Start(c.Request.Context(), "HandleAddRecurring")
	defer span.End()

	var form validation.RecurringExpenseForm
	if !bindJSON(c, &form) {
		return
	}
	id, err := h.services.Finance.AddRecurringExpense(ctx, form)
	if err != nil {
		h.respondError(c, span, err, "Failed to add recurring expense")
		return
	}
	c.JSON(http.StatusCreated, gin.H{"id": id})
}

func (h *HttpHandlers) HandleStreamRecurring(c *gin.Context) {
	ctx, span := h.Tracer.Start(c.Request.Context(), "HandleStreamRecurring")
	defer span.End()

	p, err := h.services.Finance.WatchRecurring(ctx)
	if err != nil {
		h.respondError(c, span, err, "Failed to watch recurring expenses")
		return
	}
	streamProjection(h, c, span, p)
}

func (h *HttpHandlers) HandleToggleRecurringActive(c *gin.Context) {
	ctx, span := h.Tracer.Start(c.Request.Context(), "HandleToggleRecurringActive")
	defer span.End()

	id := c.Param("id")
	active, err := h.services.Finance.ToggleActive(ctx, id)
	if err != nil {
		h.respondError(c, span, err, "Failed to toggle recurring expense")
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": id, "isActive": active})
}

// HandleToggleRecurringPaid flips the paid state of ?month= (current month when omitted).
func (h *HttpHandlers) HandleToggleRecurringPaid(c *gin.Context) {
	ctx, span := h.Tracer.Start(c.Request.Context(), "HandleToggleRecurringPaid")
	defer span.End()

	id := c.Param("id")
	month := h.monthParam(c)
	paid, err := h.services.Finance.TogglePaid(ctx, id, month)
	if err != nil {
		h.respondError(c, span, err, "Failed to toggle paid month")
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": id, "month": month, "paid": paid})
}

func (h *HttpHandlers) HandleDeleteRecurring(c *gin.Context) {
	ctx, span := h.Tracer.Start(c.Request.Context(), "HandleDeleteRecurring")
	defer span.End()

	if err := h.services.Finance.DeleteRecurringExpense(ctx, c.Param("id")); err != nil {
		h.respondError(c, span, err, "Failed to delete recurring expense")
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *HttpHandlers) HandleMonthlySummary(c *gin.Context) {
	ctx, span := h.Tracer.Start(c.Request.Context(), "HandleMonthlySummary")
	defer span.End()

	summary, err := h.services.Finance.MonthlySummary(ctx, h.monthParam(c))
	if err != nil {
		h.respondError(c, span, err, "Failed to compute monthly summary")
		return
	}
	c.JSON(http.StatusOK, summary)
}

// monthParam reads ?month=, defaulting to the current month.
func (h *HttpHandlers) monthParam(c *gin.Context) string {
	if month := c.Query("month"); month != "" {
		return month
	}
	return utils.YearMonthOf(h.services.Now()).String()
}
