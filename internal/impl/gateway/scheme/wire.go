package impl_scheme

import (
	"regexp"

	domain_money "github.com/PedroCamargo-dev/cross-border-transfers-service/internal/domain/money"
)

const (
	contentTypeQuotes    = "application/vnd.interoperability.quotes+json;version=1.1"
	contentTypeTransfers = "application/vnd.interoperability.transfers+json;version=1.1"

	headerSource      = "FSPIOP-Source"
	headerDestination = "FSPIOP-Destination"

	// Extension keys carried on the quote request.
	extFXRate         = "fxRate"
	extFXProvider     = "fxProvider"
	extTargetCurrency = "targetCurrency"
	extTargetAmount   = "targetAmount"
	extTransferID     = "transferId"
	extQuoteID        = "quoteId"
)

var msisdnPattern = regexp.MustCompile(`^\+?[0-9]{6,15}$`)

type wireMoney struct {
	Currency string `json:"currency"`
	Amount   string `json:"amount"`
}

func toWireMoney(m domain_money.Money) wireMoney {
	return wireMoney{Currency: string(m.Currency), Amount: m.Amount.StringFixed(domain_money.MinorUnits)}
}

type partyIDInfo struct {
	PartyIDType     string `json:"partyIdType"`
	PartyIdentifier string `json:"partyIdentifier"`
	FspID           string `json:"fspId,omitempty"`
}

type party struct {
	PartyIDInfo partyIDInfo `json:"partyIdInfo"`
	Name        string      `json:"name,omitempty"`
	MSISDN      string      `json:"msisdn,omitempty"`
}

func newParty(identifier, name, phone, fsp string) party {
	idType := "ACCOUNT_ID"
	if msisdnPattern.MatchString(identifier) {
		idType = "MSISDN"
	}
	return party{
		PartyIDInfo: partyIDInfo{PartyIDType: idType, PartyIdentifier: identifier, FspID: fsp},
		Name:        name,
		MSISDN:      phone,
	}
}

type extension struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

type extensionList struct {
	Extension []extension `json:"extension"`
}

type transactionType struct {
	Scenario      string `json:"scenario"`
	Initiator     string `json:"initiator"`
	InitiatorType string `json:"initiatorType"`
}

type quoteRequestBody struct {
	QuoteID         string          `json:"quoteId"`
	TransactionID   string          `json:"transactionId"`
	Payee           party           `json:"payee"`
	Payer           party           `json:"payer"`
	AmountType      string          `json:"amountType"`
	Amount          wireMoney       `json:"amount"`
	TransactionType transactionType `json:"transactionType"`
	Note            string          `json:"note,omitempty"`
	ExtensionList   extensionList   `json:"extensionList"`
}

type quoteResponseBody struct {
	TransferAmount     *wireMoney `json:"transferAmount"`
	PayeeReceiveAmount *wireMoney `json:"payeeReceiveAmount,omitempty"`
	PayeeFspFee        *wireMoney `json:"payeeFspFee,omitempty"`
	Expiration         string     `json:"expiration,omitempty"`
	IlpPacket          string     `json:"ilpPacket,omitempty"`
	Condition          string     `json:"condition,omitempty"`
}

type transferRequestBody struct {
	TransferID    string        `json:"transferId"`
	PayerFsp      string        `json:"payerFsp"`
	PayeeFsp      string        `json:"payeeFsp"`
	Amount        wireMoney     `json:"amount"`
	IlpPacket     string        `json:"ilpPacket"`
	Condition     string        `json:"condition"`
	Expiration    string        `json:"expiration"`
	ExtensionList extensionList `json:"extensionList"`
}

type transferResponseBody struct {
	TransferState      string `json:"transferState"`
	Fulfilment         string `json:"fulfilment,omitempty"`
	CompletedTimestamp string `json:"completedTimestamp,omitempty"`
}

type errorResponseBody struct {
	ErrorInformation struct {
		ErrorCode        string `json:"errorCode"`
		ErrorDescription string `json:"errorDescription"`
	} `json:"errorInformation"`
}
