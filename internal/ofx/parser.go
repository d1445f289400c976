// Package ofx imports bank and credit card statements in OFX/QFX format.
package ofx

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/Veraticus/spice-ledger/internal/model"
	"github.com/aclindsa/ofxgo"
)

// DefaultCategory is used when the transaction type says nothing about what it was.
const DefaultCategory = "Imported"

var (
	severityRegex = regexp.MustCompile(`(?i)<SEVERITY>(Info|Warn|Error)</SEVERITY>`)
	// Opening tags at end of line that are missing their closing bracket.
	tagFixRegex = regexp.MustCompile(`(?m)^(\s*<[A-Z][A-Z0-9._]*[A-Z0-9])$`)
)

// categoriesByType maps OFX transaction types to ledger categories.
var categoriesByType = map[string]string{
	"INT":       "Interest",
	"DIV":       "Dividends",
	"FEE":       "Bank Fees",
	"SRVCHG":    "Bank Fees",
	"ATM":       "Cash & ATM",
	"CASH":      "Cash & ATM",
	"CHECK":     "Checks",
	"DIRECTDEP": "Deposits",
	"DEP":       "Deposits",
	"XFER":      "Transfers",
	"PAYMENT":   "Payments",
}

// Parser converts OFX statements into ledger transactions.
type Parser struct {
	location *time.Location
}

// Option configures a Parser.
type Option func(*Parser)

// WithLocation sets the time zone posted dates are rendered in.
func WithLocation(loc *time.Location) Option {
	return func(p *Parser) {
		if loc != nil {
			p.location = loc
		}
	}
}

// NewParser creates a new OFX parser.
func NewParser(opts ...Option) *Parser {
	p := &Parser{location: time.Local}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// preprocessOFX fixes common formatting issues in OFX files.
func (p *Parser) preprocessOFX(content string) string {
	content = strings.TrimLeft(content, " \t\r\n")

	// SEVERITY must be INFO, WARN or ERROR.
	content = severityRegex.ReplaceAllStringFunc(content, strings.ToUpper)

	return tagFixRegex.ReplaceAllString(content, "$1>")
}

func (p *Parser) parse(ctx context.Context, reader io.Reader) (*ofxgo.Response, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	content, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("failed to read OFX file: %w", err)
	}

	resp, err := ofxgo.ParseResponse(strings.NewReader(p.preprocessOFX(string(content))))
	if err != nil {
		return nil, fmt.Errorf("failed to parse OFX file: %w", err)
	}
	return resp, nil
}

// ParseFile parses an OFX/QFX file. Debits become expenses and credits income;
// zero-amount entries are dropped.
func (p *Parser) ParseFile(ctx context.Context, reader io.Reader) ([]model.Transaction, error) {
	resp, err := p.parse(ctx, reader)
	if err != nil {
		return nil, err
	}

	var transactions []model.Transaction
	var bankStmts, ccStmts int

	for _, msg := range resp.Bank {
		if stmt, ok := msg.(*ofxgo.StatementResponse); ok {
			bankStmts++
			if stmt.BankTranList != nil {
				transactions = p.appendConverted(transactions, stmt.BankTranList.Transactions, string(stmt.BankAcctFrom.AcctID))
			}
		}
	}

	for _, msg := range resp.CreditCard {
		if stmt, ok := msg.(*ofxgo.CCStatementResponse); ok {
			ccStmts++
			if stmt.BankTranList != nil {
				transactions = p.appendConverted(transactions, stmt.BankTranList.Transactions, string(stmt.CCAcctFrom.AcctID))
			}
		}
	}

	slog.Info("Parsed OFX file",
		"total_transactions", len(transactions),
		"bank_statements", bankStmts,
		"cc_statements", ccStmts)

	return transactions, nil
}

func (p *Parser) appendConverted(dst []model.Transaction, src []ofxgo.Transaction, accountID string) []model.Transaction {
	for _, ofxTx := range src {
		tx, ok := p.convertTransaction(ofxTx)
		if !ok {
			slog.Debug("Skipping zero-amount OFX transaction",
				"account", accountID,
				"fitid", string(ofxTx.FiTID))
			continue
		}
		dst = append(dst, tx)
	}
	return dst
}

// convertTransaction converts an OFX transaction to a ledger transaction.
func (p *Parser) convertTransaction(ofxTx ofxgo.Transaction) (model.Transaction, bool) {
	// OFX uses negative amounts for debits.
	amount, _ := ofxTx.TrnAmt.Float64()
	kind := model.KindIncome
	if amount < 0 {
		kind = model.KindExpense
		amount = -amount
	}
	if amount == 0 {
		return model.Transaction{}, false
	}

	category, ok := categoriesByType[ofxTx.TrnType.String()]
	if !ok {
		category = DefaultCategory
	}

	notes := p.extractMerchantName(ofxTx)
	if ofxTx.CheckNum != "" && !strings.Contains(notes, string(ofxTx.CheckNum)) {
		notes = strings.TrimSpace(fmt.Sprintf("%s check #%s", notes, string(ofxTx.CheckNum)))
	}

	return model.Transaction{
		Kind:      kind,
		Amount:    amount,
		Category:  category,
		Notes:     notes,
		Timestamp: ofxTx.DtPosted.In(p.location).Format(model.TimestampLayout),
	}, true
}

// extractMerchantName tries to get a clean merchant name from OFX data.
func (p *Parser) extractMerchantName(tx ofxgo.Transaction) string {
	// PAYEE is usually cleaner than NAME.
	if tx.Payee != nil && tx.Payee.Name != "" {
		return strings.TrimSpace(string(tx.Payee.Name))
	}

	name := string(tx.Name)
	if tx.Memo != "" && isGenericDescription(name) {
		name = string(tx.Memo)
	}
	name = strings.TrimSpace(name)

	prefixes := []string{
		"POS PURCHASE ",
		"PURCHASE AUTHORIZED ON ",
		"DEBIT CARD PURCHASE ",
		"ACH DEBIT ",
		"CHECK CARD ",
		"VISA PURCHASE ",
		"MC PURCHASE ",
		"DEBIT PURCHASE ",
	}

	for _, prefix := range prefixes {
		if strings.HasPrefix(strings.ToUpper(name), prefix) {
			name = name[len(prefix):]
			break
		}
	}

	// Leading "MM/DD " dates.
	if len(name) > 5 && name[2] == '/' && name[5] == ' ' {
		name = strings.TrimSpace(name[6:])
	}

	return name
}

// isGenericDescription checks if a transaction name is too generic.
func isGenericDescription(name string) bool {
	generic := []string{
		"DEBIT",
		"CREDIT",
		"PURCHASE",
		"PAYMENT",
		"POS TRANSACTION",
		"CARD PURCHASE",
	}

	upperName := strings.ToUpper(name)
	for _, g := range generic {
		if upperName == g {
			return true
		}
	}
	return false
}

// Accounts returns the sorted, unique account IDs in an OFX file.
func (p *Parser) Accounts(ctx context.Context, reader io.Reader) ([]string, error) {
	resp, err := p.parse(ctx, reader)
	if err != nil {
		return nil, err
	}

	accountMap := make(map[string]bool)

	for _, msg := range resp.Bank {
		if stmt, ok := msg.(*ofxgo.StatementResponse); ok && stmt.BankAcctFrom.AcctID != "" {
			accountMap[string(stmt.BankAcctFrom.AcctID)] = true
		}
	}

	for _, msg := range resp.CreditCard {
		if stmt, ok := msg.(*ofxgo.CCStatementResponse); ok && stmt.CCAcctFrom.AcctID != "" {
			accountMap[string(stmt.CCAcctFrom.AcctID)] = true
		}
	}

	accounts := make([]string, 0, len(accountMap))
	for acct := range accountMap {
		accounts = append(accounts, acct)
	}
	sort.Strings(accounts)

	return accounts, nil
}
