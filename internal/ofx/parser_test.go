package ofx

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/Veraticus/spice-ledger/internal/model"
	"github.com/aclindsa/ofxgo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Sample OFX data for testing.
const sampleBankOFX = `OFXHEADER:100
DATA:OFXSGML
VERSION:102
SECURITY:NONE
ENCODING:USASCII
CHARSET:1252
COMPRESSION:NONE
OLDFILEUID:NONE
NEWFILEUID:NONE

<OFX>
<SIGNONMSGSRSV1>
<SONRS>
<STATUS>
<CODE>0
<SEVERITY>INFO
</STATUS>
<DTSERVER>20240315120000[0:GMT]
<LANGUAGE>ENG
</SONRS>
</SIGNONMSGSRSV1>
<BANKMSGSRSV1>
<STMTTRNRS>
<TRNUID>1
<STATUS>
<CODE>0
<SEVERITY>INFO
</STATUS>
<STMTRS>
<CURDEF>USD
<BANKACCTFROM>
<BANKID>123456789
<ACCTID>1234567890
<ACCTTYPE>CHECKING
</BANKACCTFROM>
<BANKTRANLIST>
<DTSTART>20240101120000[0:GMT]
<DTEND>20240131120000[0:GMT]
<STMTTRN>
<TRNTYPE>DEBIT
<DTPOSTED>20240115120000[0:GMT]
<TRNAMT>-25.50
<FITID>2024011501
<NAME>STARBUCKS STORE #1234
</STMTTRN>
<STMTTRN>
<TRNTYPE>DEBIT
<DTPOSTED>20240120120000[0:GMT]
<TRNAMT>-125.00
<FITID>2024012001
<NAME>Whole Foods Market
</STMTTRN>
<STMTTRN>
<TRNTYPE>CHECK
<DTPOSTED>20240125120000[0:GMT]
<TRNAMT>-500.00
<FITID>2024012501
<CHECKNUM>1234
<NAME>CHECK #1234
</STMTTRN>
</BANKTRANLIST>
<LEDGERBAL>
<BALAMT>1000.00
<DTASOF>20240131120000[0:GMT]
</LEDGERBAL>
</STMTRS>
</STMTTRNRS>
</BANKMSGSRSV1>
</OFX>`

const sampleCreditCardOFX = `OFXHEADER:100
DATA:OFXSGML
VERSION:102
SECURITY:NONE
ENCODING:USASCII
CHARSET:1252
COMPRESSION:NONE
OLDFILEUID:NONE
NEWFILEUID:NONE

<OFX>
<SIGNONMSGSRSV1>
<SONRS>
<STATUS>
<CODE>0
<SEVERITY>INFO
</STATUS>
<DTSERVER>20240315120000[0:GMT]
<LANGUAGE>ENG
</SONRS>
</SIGNONMSGSRSV1>
<CREDITCARDMSGSRSV1>
<CCSTMTTRNRS>
<TRNUID>1
<STATUS>
<CODE>0
<SEVERITY>INFO
</STATUS>
<CCSTMTRS>
<CURDEF>USD
<CCACCTFROM>
<ACCTID>4111111111111111
</CCACCTFROM>
<BANKTRANLIST>
<DTSTART>20240101120000[0:GMT]
<DTEND>20240131120000[0:GMT]
<STMTTRN>
<TRNTYPE>DEBIT
<DTPOSTED>20240110120000[0:GMT]
<TRNAMT>-45.99
<FITID>CC2024011001
<NAME>AMAZON.COM*RT4Y7HG2
</STMTTRN>
<STMTTRN>
<TRNTYPE>DEBIT
<DTPOSTED>20240115120000[0:GMT]
<TRNAMT>-15.00
<FITID>CC2024011501
<NAME>NETFLIX.COM
</STMTTRN>
</BANKTRANLIST>
<LEDGERBAL>
<BALAMT>-500.00
<DTASOF>20240131120000[0:GMT]
</LEDGERBAL>
</CCSTMTRS>
</CCSTMTTRNRS>
</CREDITCARDMSGSRSV1>
</OFX>`

// sampleMixedOFX adds an interest credit and a zero-amount fee to the bank statement.
var sampleMixedOFX = strings.Replace(sampleBankOFX, "</BANKTRANLIST>", `<STMTTRN>
<TRNTYPE>INT
<DTPOSTED>20240131120000[0:GMT]
<TRNAMT>3.20
<FITID>2024013101
<NAME>INTEREST PAID
</STMTTRN>
<STMTTRN>
<TRNTYPE>FEE
<DTPOSTED>20240131120000[0:GMT]
<TRNAMT>0.00
<FITID>2024013102
<NAME>MONTHLY FEE WAIVED
</STMTTRN>
<STMTTRN>
<TRNTYPE>DEBIT
<DTPOSTED>20240131120000[0:GMT]
<TRNAMT>-9.99
<FITID>2024013103
<NAME>DEBIT
<MEMO>SPOTIFY USA
</STMTTRN>
</BANKTRANLIST>`, 1)

func TestParseFile(t *testing.T) {
	tests := []struct {
		name          string
		ofxData       string
		expectedCount int
		expectedError bool
	}{
		{
			name:          "valid bank statement",
			ofxData:       sampleBankOFX,
			expectedCount: 3,
		},
		{
			name:          "valid credit card statement",
			ofxData:       sampleCreditCardOFX,
			expectedCount: 2,
		},
		{
			name:          "zero amounts are dropped",
			ofxData:       sampleMixedOFX,
			expectedCount: 5,
		},
		{
			name:          "leading blank lines",
			ofxData:       "\n\n  " + sampleBankOFX,
			expectedCount: 3,
		},
		{
			name:          "invalid OFX data",
			ofxData:       "not valid OFX",
			expectedError: true,
		},
		{
			name:          "empty OFX",
			ofxData:       "",
			expectedError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			parser := NewParser(WithLocation(time.UTC))
			reader := strings.NewReader(tt.ofxData)

			transactions, err := parser.ParseFile(context.Background(), reader)

			if tt.expectedError {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Len(t, transactions, tt.expectedCount)
			for _, tx := range transactions {
				assert.NoError(t, tx.Validate())
			}
		})
	}
}

func TestParseBankTransactions(t *testing.T) {
	parser := NewParser(WithLocation(time.UTC))

	transactions, err := parser.ParseFile(context.Background(), strings.NewReader(sampleBankOFX))
	require.NoError(t, err)

	expected := []model.Transaction{
		{Kind: model.KindExpense, Amount: 25.50, Category: DefaultCategory, Notes: "STARBUCKS STORE #1234", Timestamp: "2024-01-15 12:00:00"},
		{Kind: model.KindExpense, Amount: 125.00, Category: DefaultCategory, Notes: "Whole Foods Market", Timestamp: "2024-01-20 12:00:00"},
		{Kind: model.KindExpense, Amount: 500.00, Category: "Checks", Notes: "CHECK #1234", Timestamp: "2024-01-25 12:00:00"},
	}
	assert.Equal(t, expected, transactions)
}

func TestParseCreditsAndTypes(t *testing.T) {
	parser := NewParser(WithLocation(time.UTC))

	transactions, err := parser.ParseFile(context.Background(), strings.NewReader(sampleMixedOFX))
	require.NoError(t, err)
	require.Len(t, transactions, 5)

	interest := transactions[3]
	assert.Equal(t, model.KindIncome, interest.Kind)
	assert.Equal(t, 3.20, interest.Amount)
	assert.Equal(t, "Interest", interest.Category)

	spotify := transactions[4]
	assert.Equal(t, model.KindExpense, spotify.Kind)
	assert.Equal(t, "SPOTIFY USA", spotify.Notes)
}

func TestParseCreditCardTransactions(t *testing.T) {
	parser := NewParser(WithLocation(time.UTC))

	transactions, err := parser.ParseFile(context.Background(), strings.NewReader(sampleCreditCardOFX))
	require.NoError(t, err)
	require.Len(t, transactions, 2)

	assert.Equal(t, "AMAZON.COM*RT4Y7HG2", transactions[0].Notes)
	assert.Equal(t, 45.99, transactions[0].Amount)
	assert.Equal(t, "2024-01-10 12:00:00", transactions[0].Timestamp)
	assert.Equal(t, "NETFLIX.COM", transactions[1].Notes)
	assert.Equal(t, 15.00, transactions[1].Amount)
}

func TestParseFile_TimeZone(t *testing.T) {
	berlin, err := time.LoadLocation("Europe/Berlin")
	if err != nil {
		t.Skip("time zone database not available")
	}

	transactions, err := NewParser(WithLocation(berlin)).ParseFile(context.Background(), strings.NewReader(sampleCreditCardOFX))
	require.NoError(t, err)
	assert.Equal(t, "2024-01-10 13:00:00", transactions[0].Timestamp)
}

func TestParseFile_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewParser().ParseFile(ctx, strings.NewReader(sampleBankOFX))
	assert.ErrorIs(t, err, context.Canceled)
}

func TestExtractMerchantName(t *testing.T) {
	parser := NewParser()

	tests := []struct {
		payee    *ofxgo.Payee
		name     string
		input    string
		memo     string
		expected string
	}{
		{
			name:     "remove POS prefix",
			input:    "POS PURCHASE STARBUCKS",
			expected: "STARBUCKS",
		},
		{
			name:     "remove DEBIT CARD prefix",
			input:    "DEBIT CARD PURCHASE WHOLE FOODS",
			expected: "WHOLE FOODS",
		},
		{
			name:     "remove leading date",
			input:    "01/15 CORNER BAKERY",
			expected: "CORNER BAKERY",
		},
		{
			name:     "generic name falls back to memo",
			input:    "PAYMENT",
			memo:     "CITY WATER",
			expected: "CITY WATER",
		},
		{
			name:     "payee wins",
			input:    "ACH DEBIT 12345",
			payee:    &ofxgo.Payee{Name: "Landlord LLC"},
			expected: "Landlord LLC",
		},
		{
			name:     "trim whitespace",
			input:    "  AMAZON.COM  ",
			expected: "AMAZON.COM",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tx := ofxgo.Transaction{
				Name:  ofxgo.String(tt.input),
				Memo:  ofxgo.String(tt.memo),
				Payee: tt.payee,
			}
			assert.Equal(t, tt.expected, parser.extractMerchantName(tx))
		})
	}
}

func TestAccounts(t *testing.T) {
	parser := NewParser()

	accounts, err := parser.Accounts(context.Background(), strings.NewReader(sampleBankOFX))
	require.NoError(t, err)
	assert.Equal(t, []string{"1234567890"}, accounts)

	accounts, err = parser.Accounts(context.Background(), strings.NewReader(sampleCreditCardOFX))
	require.NoError(t, err)
	assert.Equal(t, []string{"4111111111111111"}, accounts)
}
