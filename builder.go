package fluentdb

import (
	"context"
	"errors"
	"sort"
	"strings"

	"github.com/biyonik/go-fluent-db/internal/validation"
)

// builderState, StatementBuilder üzerindeki tek bir ifadenin yaşam döngüsüdür.
type builderState int

const (
	stateEmpty builderState = iota
	stateComposing
	stateConsumed
)

func (s builderState) String() string {
	switch s {
	case stateComposing:
		return "composing"
	case stateConsumed:
		return "consumed"
	default:
		return "empty"
	}
}

// StatementBuilder, SQL metnini ve :name parametrelerini zincirli çağrılarla biriktiren ana yapıdır.
//
// Select ve Query yeni bir ifade başlatır (metni ezer), Where ve OrderBy metnin sonuna ekler. Terminal
// çağrılar (GetFirst, GetAll, GetFirstInto, GetAllInto, Insert) ifadeyi Executor üzerinden çalıştırır ve
// builder'ı tüketilmiş (consumed) duruma geçirir; tekrar çalıştırmak için yeni bir Select veya Query gerekir.
//
// Genel kullanım örneği:
//
//	row, ok, err := db.Select("users", "id", "name").
//	    Where(fluentdb.Cond{Column: "id", Value: "1"}, fluentdb.Cond{Column: "age", Value: ">= 18"}).
//	    OrderBy("name").
//	    GetFirstContext(ctx)
//
// Kompozisyon hataları (hatalı koşul, strict modda geçersiz ad, yaşam döngüsüne aykırı çağrı) biriktirilir:
// ilk hata saklanır ve bir sonraki terminal çağrı ya da ToSQL tarafından döndürülür.
//
// StatementBuilder örnekleri **concurrent-safe** değildir; her mantıksal sorgu için yeni bir builder kullanın.
//
// @author Ahmet ALTUN
// @github github.com/biyonik
// @linkedin linkedin.com/in/biyonik
// @email ahmet.altun60@gmail.com
type StatementBuilder struct {
	executor  Executor
	fetchMode FetchMode
	strict    bool

	// İfade metni ve bağlanan parametreler
	text   string
	params Params

	state      builderState
	whereOpen  bool
	orderOpen  bool
	conditions int

	// Birikmiş hata
	err error
}

// NewBuilder, belirtilen executor ile yeni bir StatementBuilder oluşturur.
func NewBuilder(executor Executor, opts ...BuilderOption) *StatementBuilder {
	b := &StatementBuilder{
		executor: executor,
		params:   Params{},
	}
	for _, opt := range opts {
		if opt != nil {
			opt(b)
		}
	}
	return b
}

// Select, yeni bir SELECT ifadesi başlatır: "SELECT <kolonlar> FROM <tablo> ".
// Kolon verilmezse "*" kullanılır. Önceki metin, parametreler ve hata temizlenir.
// Strict modda reddedilen ad metne yazılmaz; metin boş kalır ve hata kaydedilir.
func (b *StatementBuilder) Select(table string, columns ...string) *StatementBuilder {
	if len(columns) == 0 {
		columns = []string{"*"}
	}

	if b.strict {
		if err := b.validateSelect(table, columns); err != nil {
			b.start("", Params{})
			b.setErr(err)
			return b
		}
	}

	b.start("SELECT "+strings.Join(columns, ", ")+" FROM "+table+" ", Params{})
	return b
}

func (b *StatementBuilder) validateSelect(table string, columns []string) error {
	if err := validateIdentifier("table", table, validation.ValidateTable); err != nil {
		return err
	}
	for _, c := range columns {
		if err := validateIdentifier("column", c, validation.ValidateColumn); err != nil {
			return err
		}
	}
	return nil
}

// Where, koşulları verilen sırayla ekler. İlk koşuldan önce bir kez "WHERE " yazılır; sonraki her koşulun
// önüne "AND " gelir. Birden fazla Where çağrısı aynı AND zincirine devam eder.
//
// Değer '<', '>' veya '=' içeren bir string ise "<operatör> <değer>" olarak ayrıştırılır:
//
//	Where(Cond{"id", "2"})      // id = :id     {id: "2"}
//	Where(Cond{"age", ">= 18"}) // age >= :age  {age: "18"}
//
// Ayrıştırılamayan değerler ErrMalformedCondition kaydeder ve metne yazılmaz.
// OrderBy'dan sonra çağrılırsa ErrWhereAfterOrderBy kaydedilir.
func (b *StatementBuilder) Where(conds ...Cond) *StatementBuilder {
	if !b.composable() {
		return b
	}
	if b.orderOpen && len(conds) > 0 {
		b.setErr(ErrWhereAfterOrderBy)
		return b
	}

	for _, c := range conds {
		if b.strict && !b.check("column", c.Column, validation.ValidateIdentifier) {
			return b
		}
		cond, err := ParseCondition(c.Column, c.Value)
		if err != nil {
			b.setErr(err)
			return b
		}
		b.appendCondition(cond)
	}
	return b
}

// WhereMap, Where'in map alan biçimidir. Anahtarlar sıralanarak eklenir.
func (b *StatementBuilder) WhereMap(conds map[string]any) *StatementBuilder {
	return b.Where(CondsFromMap(conds)...)
}

func (b *StatementBuilder) appendCondition(c Condition) {
	if !b.whereOpen {
		b.text += "WHERE "
		b.whereOpen = true
		b.conditions = 0
	}
	if b.conditions > 0 {
		b.text += "AND "
	}
	b.text += c.SQL()
	b.params[c.Column] = c.Value
	b.conditions++
}

// OrderBy, "ORDER BY <kolon> <yön> " ekler. Yön verilmezse ASC kullanılır.
// Tekrar eden çağrılar birleştirilmez; yön metne olduğu gibi yazılır.
func (b *StatementBuilder) OrderBy(column string, order ...string) *StatementBuilder {
	if !b.composable() {
		return b
	}

	direction := "ASC"
	if len(order) > 0 && order[0] != "" {
		direction = order[0]
	}
	if b.strict {
		if !b.check("column", column, validation.ValidateIdentifier) {
			return b
		}
		if d := strings.ToUpper(direction); d != "ASC" && d != "DESC" {
			b.setErr(NewValidationError(direction, "order direction", "must be ASC or DESC"))
			return b
		}
	}

	b.text += "ORDER BY " + column + " " + direction + " "
	b.orderOpen = true
	return b
}

// OrderByDesc, OrderBy(column, "DESC") kısayoludur.
func (b *StatementBuilder) OrderByDesc(column string) *StatementBuilder {
	return b.OrderBy(column, "DESC")
}

// Query, ham SQL ve parametrelerini bekleyen ifade olarak saklar; çalıştırma GetFirst/GetAll ile yapılır.
// Metin ve parametreler olduğu gibi güvenilir kabul edilir.
//
// Sonrasında Where kullanılacaksa sql bir WHERE içermemelidir: builder ham metni taramaz ve ilk
// koşuldan önce "WHERE " yazar.
func (b *StatementBuilder) Query(sql string, params Params) *StatementBuilder {
	b.start(sql, params.Clone())
	return b
}

// SetFetchMode, GetFirst ve GetAll için fetch modunu değiştirir.
func (b *StatementBuilder) SetFetchMode(mode FetchMode) *StatementBuilder {
	b.fetchMode = mode
	return b
}

// ToSQL, ifadeyi çalıştırmadan metin ve parametre kopyasıyla döndürür.
func (b *StatementBuilder) ToSQL() (string, Params, error) {
	if b.err != nil {
		return "", nil, b.err
	}
	if b.state == stateEmpty {
		return "", nil, ErrNoStatement
	}
	return b.text, b.params.Clone(), nil
}

// ToInsertSQL, Insert'in çalıştıracağı ifadeyi döndürür:
// "INSERT INTO <tablo> (<a>, <b>) VALUES (:a, :b)". Kolonlar sıralıdır.
func (b *StatementBuilder) ToInsertSQL(table string, params Params) (string, Params, error) {
	if table == "" {
		return "", nil, ErrNoTable
	}
	if len(params) == 0 {
		return "", nil, ErrNoColumns
	}

	cols := make([]string, 0, len(params))
	for c := range params {
		cols = append(cols, c)
	}
	sort.Strings(cols)

	if b.strict {
		if err := validateIdentifier("table", table, validation.ValidateIdentifier); err != nil {
			return "", nil, err
		}
		for _, c := range cols {
			if err := validateIdentifier("column", c, validation.ValidateIdentifier); err != nil {
				return "", nil, err
			}
		}
	}

	placeholders := make([]string, len(cols))
	for i, c := range cols {
		placeholders[i] = ":" + c
	}

	var sb strings.Builder
	sb.WriteString("INSERT INTO ")
	sb.WriteString(table)
	sb.WriteString(" (")
	sb.WriteString(strings.Join(cols, ", "))
	sb.WriteString(") VALUES (")
	sb.WriteString(strings.Join(placeholders, ", "))
	sb.WriteString(")")
	return sb.String(), params.Clone(), nil
}

// Text, biriken SQL metnini döndürür.
func (b *StatementBuilder) Text() string {
	return b.text
}

// Params, bağlanan parametrelerin kopyasını döndürür.
func (b *StatementBuilder) Params() Params {
	return b.params.Clone()
}

// Err, birikmiş hatayı döndürür.
func (b *StatementBuilder) Err() error {
	return b.err
}

// Consumed, mevcut ifadenin bir terminal çağrı tarafından çalıştırılıp çalıştırılmadığını bildirir.
func (b *StatementBuilder) Consumed() bool {
	return b.state == stateConsumed
}

// GetFirstContext, ifadeyi çalıştırır ve ilk satırı döndürür. Sonuç boşsa (Row{}, false, nil) döner;
// boş sonuç hata değildir.
func (b *StatementBuilder) GetFirstContext(ctx context.Context) (Row, bool, error) {
	if err := b.begin(); err != nil {
		return Row{}, false, err
	}

	cur, err := b.open(ctx, "get first")
	if err != nil {
		return Row{}, false, err
	}
	defer cur.Close()

	row, ok, err := cur.FetchOne(b.fetchMode)
	if err != nil {
		return Row{}, false, newQueryError("get first", b.text, err)
	}
	return row, ok, nil
}

// GetFirst, GetFirstContext'in context.Background() versiyonudur.
func (b *StatementBuilder) GetFirst() (Row, bool, error) {
	return b.GetFirstContext(context.Background())
}

// GetAllContext, ifadeyi çalıştırır ve tüm satırları döndürür. Satır yoksa boş (nil olmayan) slice döner.
func (b *StatementBuilder) GetAllContext(ctx context.Context) ([]Row, error) {
	if err := b.begin(); err != nil {
		return nil, err
	}

	cur, err := b.open(ctx, "get all")
	if err != nil {
		return nil, err
	}
	defer cur.Close()

	rows, err := cur.FetchAll(b.fetchMode)
	if err != nil {
		return nil, newQueryError("get all", b.text, err)
	}
	return rows, nil
}

// GetAll, GetAllContext'in context.Background() versiyonudur.
func (b *StatementBuilder) GetAll() ([]Row, error) {
	return b.GetAllContext(context.Background())
}

// GetFirstIntoContext, ilk satırı dest içine tarar. Struct alanları `db` tag'leriyle eşlenir.
func (b *StatementBuilder) GetFirstIntoContext(ctx context.Context, dest any) (bool, error) {
	if err := b.begin(); err != nil {
		return false, err
	}

	cur, err := b.open(ctx, "get first")
	if err != nil {
		return false, err
	}
	defer cur.Close()

	ok, err := cur.ScanOne(dest)
	if err != nil {
		if errors.Is(err, ErrNotAPointer) {
			return false, err
		}
		return false, newQueryError("get first", b.text, err)
	}
	return ok, nil
}

// GetFirstInto, GetFirstIntoContext'in context.Background() versiyonudur.
func (b *StatementBuilder) GetFirstInto(dest any) (bool, error) {
	return b.GetFirstIntoContext(context.Background(), dest)
}

// GetAllIntoContext, tüm satırları dest içine tarar; dest bir slice pointer'ı olmalıdır.
func (b *StatementBuilder) GetAllIntoContext(ctx context.Context, dest any) error {
	if err := b.begin(); err != nil {
		return err
	}

	cur, err := b.open(ctx, "get all")
	if err != nil {
		return err
	}
	defer cur.Close()

	if err := cur.ScanAll(dest); err != nil {
		if errors.Is(err, ErrNotAPointer) || errors.Is(err, ErrNotASlice) {
			return err
		}
		return newQueryError("get all", b.text, err)
	}
	return nil
}

// GetAllInto, GetAllIntoContext'in context.Background() versiyonudur.
func (b *StatementBuilder) GetAllInto(dest any) error {
	return b.GetAllIntoContext(context.Background(), dest)
}

// InsertContext, params'tan bir INSERT ifadesi kurar ve çalıştırır. Etkilenen satır sayısı sıfırdan
// büyükse true döner. Çalıştırma hataları *QueryError olarak, ErrorDetail ile birlikte döner.
//
// Insert bekleyen SELECT metnini okumaz ve değiştirmez; Empty veya Composing durumundan çağrılabilir.
// Yine de terminal bir çağrıdır: bekleyen ifadeyi sonlandırır ve builder'ı tüketilmiş duruma geçirir.
// Bekleyen bir SELECT varsa Insert'ten önce çalıştırılmalı ya da Insert ayrı bir builder'da yapılmalıdır
// (DB.Insert her seferinde yeni bir builder kullanır).
func (b *StatementBuilder) InsertContext(ctx context.Context, table string, params Params) (bool, error) {
	ok, qerr, err := b.insert(ctx, table, params)
	if err != nil {
		return false, err
	}
	if qerr != nil {
		return false, qerr
	}
	return ok, nil
}

// Insert, InsertContext'in context.Background() versiyonudur.
func (b *StatementBuilder) Insert(table string, params Params) (bool, error) {
	return b.InsertContext(context.Background(), table, params)
}

// InsertDetailedContext, InsertContext gibi çalışır fakat çalıştırma hatasını hata olarak değil,
// sürücünün ErrorDetail'i olarak döndürür. error yalnızca yanlış kullanım içindir (tüketilmiş builder,
// kolon yok, executor yok).
func (b *StatementBuilder) InsertDetailedContext(ctx context.Context, table string, params Params) (bool, *ErrorDetail, error) {
	ok, qerr, err := b.insert(ctx, table, params)
	if err != nil {
		return false, nil, err
	}
	if qerr != nil {
		detail := qerr.Detail
		return false, &detail, nil
	}
	return ok, nil, nil
}

// InsertDetailed, InsertDetailedContext'in context.Background() versiyonudur.
func (b *StatementBuilder) InsertDetailed(table string, params Params) (bool, *ErrorDetail, error) {
	return b.InsertDetailedContext(context.Background(), table, params)
}

// insert, yanlış kullanımı (err) çalıştırma hatasından (qerr) ayırır.
func (b *StatementBuilder) insert(ctx context.Context, table string, params Params) (ok bool, qerr *QueryError, err error) {
	if b.state == stateConsumed {
		return false, nil, ErrStatementConsumed
	}
	if b.executor == nil {
		return false, nil, ErrNoExecutor
	}

	text, bound, err := b.ToInsertSQL(table, params)
	if err != nil {
		return false, nil, err
	}
	b.state = stateConsumed

	stmt, err := b.executor.PrepareContext(ctx, text)
	if err != nil {
		return false, newQueryError("prepare", text, err), nil
	}
	defer stmt.Close()

	res, err := stmt.ExecContext(ctx, bound)
	if err != nil {
		return false, newQueryError("insert", text, err), nil
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, newQueryError("insert", text, err), nil
	}
	return n > 0, nil, nil
}

// start, yeni bir ifade başlatır.
func (b *StatementBuilder) start(text string, params Params) {
	b.text = text
	b.params = params
	b.state = stateComposing
	b.whereOpen = false
	b.orderOpen = false
	b.conditions = 0
	b.err = nil
}

// composable, Where/OrderBy'ın metne ekleme yapıp yapamayacağını bildirir; yapamıyorsa nedenini kaydeder.
func (b *StatementBuilder) composable() bool {
	if b.err != nil {
		return false
	}
	switch b.state {
	case stateEmpty:
		b.setErr(ErrNoStatement)
		return false
	case stateConsumed:
		b.setErr(ErrStatementConsumed)
		return false
	}
	return true
}

func (b *StatementBuilder) setErr(err error) {
	if b.err == nil {
		b.err = err
	}
}

// begin, terminal çağrının çalışabileceğini kontrol eder ve ifadeyi tüketir.
func (b *StatementBuilder) begin() error {
	if b.err != nil {
		return b.err
	}
	switch b.state {
	case stateEmpty:
		return ErrNoStatement
	case stateConsumed:
		return ErrStatementConsumed
	}
	if b.executor == nil {
		return ErrNoExecutor
	}
	b.state = stateConsumed
	return nil
}

// open, bekleyen ifadeyi hazırlar ve çalıştırır. Cursor kapanınca statement da
// kapanır.
func (b *StatementBuilder) open(ctx context.Context, op string) (Cursor, error) {
	stmt, err := b.executor.PrepareContext(ctx, b.text)
	if err != nil {
		return nil, newQueryError("prepare", b.text, err)
	}
	cur, err := stmt.QueryContext(ctx, b.params)
	if err != nil {
		stmt.Close()
		return nil, newQueryError(op, b.text, err)
	}
	return &ownedCursor{Cursor: cur, stmt: stmt}, nil
}

// check, fn adı reddederse bir ValidationError kaydeder.
func (b *StatementBuilder) check(kind, name string, fn func(string) error) bool {
	if err := validateIdentifier(kind, name, fn); err != nil {
		b.setErr(err)
		return false
	}
	return true
}

func validateIdentifier(kind, name string, fn func(string) error) error {
	err := fn(name)
	if err == nil {
		return nil
	}
	reason := err.Error()
	var ie *validation.IdentifierError
	if errors.As(err, &ie) {
		reason = ie.Reason
	}
	return NewValidationError(name, kind, reason)
}
