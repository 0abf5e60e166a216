package csvimport

import (
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/appdeck/userbase/modules/appuser/domain/aggregates/appuser"
	"github.com/appdeck/userbase/pkg/serrors"
)

const sampleCSV = "first_name;last_name;birth_date;phone_no\n" +
	"Stefan;Testowy;1988.11.11;600700800\n" +
	"Maria;Ziółko;1999.1.10;\n" +
	"Jolanta;Magia;2000.2.4;666000111\n"

func testReader() *Reader {
	log := logrus.New()
	log.SetLevel(logrus.PanicLevel)
	return NewReader(log)
}

func TestParse_SampleFile(t *testing.T) {
	records, err := testReader().Parse([]byte(sampleCSV))
	require.NoError(t, err)

	assert.Equal(t, []appuser.ImportRecord{
		{FirstName: "Stefan", LastName: "Testowy", BirthDate: "1988-11-11", PhoneNumber: "600700800"},
		{FirstName: "Maria", LastName: "Ziółko", BirthDate: "1999-01-10", PhoneNumber: ""},
		{FirstName: "Jolanta", LastName: "Magia", BirthDate: "2000-02-04", PhoneNumber: "666000111"},
	}, records)
}

func TestParse_ColumnOrderFollowsHeader(t *testing.T) {
	data := "phone_no;birth_date;last_name;first_name\n" +
		"600700800;1988.11.11;Testowy;Stefan\n"
	records, err := testReader().Parse([]byte(data))
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "Stefan", records[0].FirstName)
	assert.Equal(t, "600700800", records[0].PhoneNumber)
}

func TestParse_DropsIncorrectRows(t *testing.T) {
	data := "first_name;last_name;birth_date;phone_no\n" +
		"Stefan;Testowy;1988.11.11;600700800\n" +
		"Maria2;Ziółko;1999.1.10;\n" +
		";Magia;2000.2.4;666000111\n" +
		"Jan;Kowalski;birthday;555666777\n" +
		"Adam;Nowak;2000.2.4;123\n"
	records, err := testReader().Parse([]byte(data))
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "Stefan", records[0].FirstName)
}

func TestParse_DropsRowsFailingSemanticValidation(t *testing.T) {
	// A nine-digit phone number outside the 4-8 leading-digit range converts
	// cleanly but fails validation afterwards.
	data := "first_name;last_name;birth_date;phone_no\n" +
		"Stefan;Testowy;1988.11.11;900700800\n"
	records, err := testReader().Parse([]byte(data))
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestParse_EmptyInput(t *testing.T) {
	records, err := testReader().Parse(nil)
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestParse_HeaderOnly(t *testing.T) {
	records, err := testReader().Parse([]byte("first_name;last_name;birth_date;phone_no\n"))
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestParse_MissingColumn(t *testing.T) {
	data := "first_name;last_name;birth_date\nStefan;Testowy;1988.11.11\n"
	_, err := testReader().Parse([]byte(data))
	require.Error(t, err)
	assert.True(t, serrors.IsKind(err, serrors.KindParsing))
	assert.Equal(t, parsingErrorMessage, serrors.MessageOf(err))
}

func TestParse_RaggedRow(t *testing.T) {
	data := "first_name;last_name;birth_date;phone_no\nStefan;Testowy\n"
	_, err := testReader().Parse([]byte(data))
	require.Error(t, err)
	assert.True(t, serrors.IsKind(err, serrors.KindParsing))
}

func TestParseStrict_AbortsOnBadRow(t *testing.T) {
	data := "first_name;last_name;birth_date;phone_no\n" +
		"Stefan;Testowy;1988.11.11;600700800\n" +
		"Jan;Kowalski;birthday;555666777\n"
	_, err := testReader().ParseStrict([]byte(data))
	require.Error(t, err)
	assert.True(t, serrors.IsKind(err, serrors.KindParsing))
}

func TestParseStrict_AllRowsConvertible(t *testing.T) {
	records, err := testReader().ParseStrict([]byte(sampleCSV))
	require.NoError(t, err)
	assert.Len(t, records, 3)
}
