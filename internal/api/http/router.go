package http

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/lakkaru/eksath-samithiya-backend/internal/domain"
	"github.com/lakkaru/eksath-samithiya-backend/internal/security"
)

// Handlers bundles the route handlers for router construction.
type Handlers struct {
	Auth       *AuthHandler
	Member     *MemberHandler
	Loan       *LoanHandler
	Funeral    *FuneralHandler
	Attendance *AttendanceHandler
	Receipt    *ReceiptHandler
	Finance    *FinanceHandler
	Officer    *OfficerHandler
}

// NewRouter builds the API route tree. Everything under /api except the
// login endpoint requires a valid officer token; mutating endpoints are
// additionally gated by role.
func NewRouter(h Handlers, tokens security.TokenManager) *mux.Router {
	r := mux.NewRouter()
	r.Use(LoggingMiddleware)

	r.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}).Methods(http.MethodGet)

	api := r.PathPrefix("/api").Subrouter()
	api.HandleFunc("/auth/login", h.Auth.Login).Methods(http.MethodPost)

	authed := api.NewRoute().Subrouter()
	authed.Use(AuthMiddleware(tokens))
	authed.HandleFunc("/auth/password", h.Auth.ChangePassword).Methods(http.MethodPut)

	registrar := RequireRole(domain.RoleChairman, domain.RoleSecretary, domain.RoleViceSecretary)
	treasury := RequireRole(domain.RoleChairman, domain.RoleTreasurer)
	loanDesk := RequireRole(domain.RoleChairman, domain.RoleTreasurer, domain.RoleLoanTreasurer)
	admin := RequireRole(domain.RoleChairman)

	// Members and dues.
	authed.HandleFunc("/members", h.Member.List).Methods(http.MethodGet)
	authed.HandleFunc("/members/next-number", h.Member.NextNumber).Methods(http.MethodGet)
	authed.Handle("/members", registrar(http.HandlerFunc(h.Member.Create))).Methods(http.MethodPost)
	authed.HandleFunc("/members/{memberNo:[0-9]+}", h.Member.Get).Methods(http.MethodGet)
	authed.Handle("/members/{memberNo:[0-9]+}", registrar(http.HandlerFunc(h.Member.Update))).Methods(http.MethodPut)
	authed.HandleFunc("/members/{memberNo:[0-9]+}/due", h.Member.Due).Methods(http.MethodGet)
	authed.HandleFunc("/members/{memberNo:[0-9]+}/fines", h.Member.Fines).Methods(http.MethodGet)
	authed.Handle("/members/{memberNo:[0-9]+}/fines/{fineID:[0-9]+}",
		treasury(http.HandlerFunc(h.Member.DeleteFine))).Methods(http.MethodDelete)
	authed.HandleFunc("/members/{memberNo:[0-9]+}/family", h.Member.Family).Methods(http.MethodGet)
	authed.Handle("/members/{memberNo:[0-9]+}/family",
		registrar(http.HandlerFunc(h.Member.AddDependent))).Methods(http.MethodPost)
	authed.Handle("/members/{memberNo:[0-9]+}/died",
		registrar(http.HandlerFunc(h.Member.MarkDied))).Methods(http.MethodPut)
	authed.Handle("/dependents/{dependentID:[0-9]+}/died",
		registrar(http.HandlerFunc(h.Member.MarkDependentDied))).Methods(http.MethodPut)
	authed.HandleFunc("/dues/sign-sheet", h.Member.SignSheet).Methods(http.MethodGet)

	// Loans.
	authed.Handle("/loans", loanDesk(http.HandlerFunc(h.Loan.Create))).Methods(http.MethodPost)
	authed.HandleFunc("/loans", h.Loan.ListActive).Methods(http.MethodGet)
	authed.HandleFunc("/loans/next-number", h.Loan.NextNumber).Methods(http.MethodGet)
	authed.HandleFunc("/loans/{loanID:[0-9]+}", h.Loan.Get).Methods(http.MethodGet)
	authed.Handle("/loans/{loanID:[0-9]+}", loanDesk(http.HandlerFunc(h.Loan.Delete))).Methods(http.MethodDelete)
	authed.HandleFunc("/loans/{loanID:[0-9]+}/accrual", h.Loan.Accrual).Methods(http.MethodGet)
	authed.Handle("/loans/{loanID:[0-9]+}/payments",
		loanDesk(http.HandlerFunc(h.Loan.RecordPayment))).Methods(http.MethodPost)
	authed.Handle("/loan-payments/{groupID}",
		loanDesk(http.HandlerFunc(h.Loan.UpdatePayment))).Methods(http.MethodPut)
	authed.Handle("/loan-payments/{groupID}",
		loanDesk(http.HandlerFunc(h.Loan.DeletePayment))).Methods(http.MethodDelete)
	authed.HandleFunc("/members/{memberNo:[0-9]+}/loan", h.Loan.MemberLoan).Methods(http.MethodGet)
	authed.Handle("/loans/blacklist-guarantors",
		admin(http.HandlerFunc(h.Loan.BlacklistGuarantors))).Methods(http.MethodPost)

	// Funerals.
	authed.Handle("/funerals", registrar(http.HandlerFunc(h.Funeral.Create))).Methods(http.MethodPost)
	authed.HandleFunc("/funerals", h.Funeral.List).Methods(http.MethodGet)
	authed.HandleFunc("/funerals/last-assignment", h.Funeral.LastAssignmentInfo).Methods(http.MethodGet)
	authed.HandleFunc("/funerals/{funeralID:[0-9]+}", h.Funeral.Get).Methods(http.MethodGet)
	authed.Handle("/funerals/{funeralID:[0-9]+}/event-absents",
		registrar(http.HandlerFunc(h.Funeral.UpdateEventAbsents))).Methods(http.MethodPut)
	authed.Handle("/funerals/{funeralID:[0-9]+}/work-absents",
		registrar(http.HandlerFunc(h.Funeral.UpdateWorkAttendance))).Methods(http.MethodPut)
	authed.HandleFunc("/funerals/deceased/{deceasedRef}", h.Funeral.ByDeceased).Methods(http.MethodGet)
	authed.Handle("/funerals/deceased/{deceasedRef}/extra-dues",
		treasury(http.HandlerFunc(h.Funeral.AddExtraDue))).Methods(http.MethodPost)
	authed.HandleFunc("/funerals/deceased/{deceasedRef}/extra-dues", h.Funeral.ExtraDues).Methods(http.MethodGet)

	// Meetings.
	authed.Handle("/meetings/attendance",
		registrar(http.HandlerFunc(h.Attendance.Save))).Methods(http.MethodPost)
	authed.HandleFunc("/meetings/attendance", h.Attendance.Get).Methods(http.MethodGet)

	// Receipts.
	authed.Handle("/receipts", treasury(http.HandlerFunc(h.Receipt.Create))).Methods(http.MethodPost)
	authed.HandleFunc("/receipts/{date}", h.Receipt.ByDate).Methods(http.MethodGet)
	authed.Handle("/receipts/fine-payments/{paymentID:[0-9]+}",
		treasury(http.HandlerFunc(h.Receipt.DeleteFinePayment))).Methods(http.MethodDelete)
	authed.Handle("/receipts/membership-payments/{paymentID:[0-9]+}",
		treasury(http.HandlerFunc(h.Receipt.DeleteMembershipPayment))).Methods(http.MethodDelete)

	// Income and expenses.
	authed.Handle("/incomes", treasury(http.HandlerFunc(h.Finance.AddIncome))).Methods(http.MethodPost)
	authed.HandleFunc("/incomes", h.Finance.ListIncomes).Methods(http.MethodGet)
	authed.HandleFunc("/incomes/summary", h.Finance.IncomeSummary).Methods(http.MethodGet)
	authed.Handle("/incomes/{incomeID:[0-9]+}",
		treasury(http.HandlerFunc(h.Finance.UpdateIncome))).Methods(http.MethodPut)
	authed.Handle("/incomes/{incomeID:[0-9]+}",
		treasury(http.HandlerFunc(h.Finance.DeleteIncome))).Methods(http.MethodDelete)
	authed.Handle("/expenses", treasury(http.HandlerFunc(h.Finance.AddExpense))).Methods(http.MethodPost)
	authed.HandleFunc("/expenses", h.Finance.ListExpenses).Methods(http.MethodGet)
	authed.HandleFunc("/expenses/summary", h.Finance.ExpenseSummary).Methods(http.MethodGet)
	authed.Handle("/expenses/{expenseID:[0-9]+}",
		treasury(http.HandlerFunc(h.Finance.UpdateExpense))).Methods(http.MethodPut)
	authed.Handle("/expenses/{expenseID:[0-9]+}",
		treasury(http.HandlerFunc(h.Finance.DeleteExpense))).Methods(http.MethodDelete)

	authed.Handle("/period-balances",
		treasury(http.HandlerFunc(h.Finance.SavePeriodBalance))).Methods(http.MethodPost)
	authed.HandleFunc("/period-balances", h.Finance.ListPeriodBalances).Methods(http.MethodGet)
	authed.HandleFunc("/period-balances/last", h.Finance.LastPeriodBalance).Methods(http.MethodGet)

	// Officer administration.
	authed.Handle("/officers", admin(http.HandlerFunc(h.Officer.Create))).Methods(http.MethodPost)
	authed.HandleFunc("/officers", h.Officer.List).Methods(http.MethodGet)
	authed.HandleFunc("/officers/{officerID:[0-9]+}", h.Officer.Get).Methods(http.MethodGet)
	authed.Handle("/officers/{officerID:[0-9]+}",
		admin(http.HandlerFunc(h.Officer.Update))).Methods(http.MethodPut)
	authed.Handle("/officers/{officerID:[0-9]+}",
		admin(http.HandlerFunc(h.Officer.Delete))).Methods(http.MethodDelete)
	authed.Handle("/officers/{officerID:[0-9]+}/deactivate",
		admin(http.HandlerFunc(h.Officer.Deactivate))).Methods(http.MethodPut)
	authed.Handle("/officers/{officerID:[0-9]+}/reactivate",
		admin(http.HandlerFunc(h.Officer.Reactivate))).Methods(http.MethodPut)
	authed.Handle("/officers/{officerID:[0-9]+}/roles",
		admin(http.HandlerFunc(h.Officer.AssignAreaRole))).Methods(http.MethodPost)
	authed.Handle("/officers/{officerID:[0-9]+}/roles/{role}",
		admin(http.HandlerFunc(h.Officer.RemoveAreaRole))).Methods(http.MethodDelete)

	return r
}
