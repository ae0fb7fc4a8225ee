package models

import "testing"

func TestCategoryValid(t *testing.T) {
	for _, c := range Categories {
		if !c.Valid() {
			t.Errorf("%s should be valid", c)
		}
	}
	for _, c := range []Category{"", "food", "GROCERIES", "No Data"} {
		if c.Valid() {
			t.Errorf("%q should be invalid", c)
		}
	}
}

func TestTransactionTypeValid(t *testing.T) {
	if !TransactionOnline.Valid() || !TransactionOffline.Valid() {
		t.Error("ONLINE and OFFLINE must be valid")
	}
	for _, v := range []TransactionType{"", "online", "CARD"} {
		if v.Valid() {
			t.Errorf("%q should be invalid", v)
		}
	}
}
