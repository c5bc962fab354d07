package parser

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/message/catalog"
)

// Diagnostic keys. A key is also the English format string.
const (
	msgBadFuncType        = "invalid function type '%s', expected int or double"
	msgExpectFuncName     = "expected function name"
	msgExpectLparen       = "expected ("
	msgExpectRparen       = "expected )"
	msgExpectLbrace       = "expected {"
	msgExpectRbrace       = "expected }"
	msgExpectSemi         = "expected ;"
	msgExpectReturn       = "expected return"
	msgExpectAssign       = "expected = after identifier"
	msgExpectLparenAfter  = "expected ( after %s"
	msgExpectRparenIn     = "expected ) after expression in %s"
	msgExpectReturnIdent  = "expected identifier after return"
	msgExpectDeclIdent    = "expected identifier in declaration"
	msgExpectCommaIdent   = "expected identifier after ,"
	msgExpectTarget       = "expected identifier on the left side of assignment"
	msgExpectSimpleExpr   = "expected simple expression"
	msgExpectEOF          = "expected end of input"
	msgMissingType        = "expected type (int or double) before '%s'"
	msgUnknownType        = "unknown type '%s'"
	msgMissingComma       = "missing ',' between variables"
	msgBadSeparator       = "expected ',' instead of '%s'"
	msgUnexpectedComma    = "unexpected comma before identifier"
	msgDuplicateDecl      = "duplicate declaration of variable '%s'"
	msgDeclAfterStmt      = "declarations after statements"
	msgUndeclaredTarget   = "use of undeclared variable '%s'"
	msgUndeclaredOperand  = "use of undeclared variable '%s' in expression"
	msgExtraRparen        = "extra closing parenthesis"
	msgUnsupportedOp      = "operation '%s' is not supported"
	msgUnknownFunc        = "call of unknown function '%s'"
	msgArgType            = "function '%s' expects an argument of type '%s', got '%s'"
	msgImplicitConversion = "implicit type conversion in operation '%s' between %s and %s"
	msgAssignMismatch     = "type mismatch in assignment '%s' (%s) = expression (%s)"
	msgReturnUndeclared   = "return variable '%s' is not declared"
	msgReturnMismatch     = "return type '%s' does not match function type '%s'"
	msgUnexpectedToken    = "unexpected token '%s'"
	msgCritical           = "critical error during parsing"
	msgTooDeep            = "expression nested too deeply"
)

// Trace notes.
const (
	noteBadType       = "invalid type"
	noteUnknownType   = "unknown type"
	noteUndeclared    = "undeclared variable"
	noteCall          = "function call"
	noteUnsupported   = "unsupported operation"
	noteExtra         = "extra"
	noteAfterStmts    = "after statements"
	noteBadSeparator  = "invalid separator"
	noteUnexpected    = "unexpected token"
	noteUnexpectedSep = "unexpected comma"
	noteInt           = "int"
	noteDouble        = "double"
)

// Report headings, shared with the report package.
const (
	MsgLexemeTable  = "LEXEME TABLE"
	MsgKind         = "Kind"
	MsgLexeme       = "Lexeme"
	MsgIndex        = "Index"
	MsgTotalLexemes = "Total unique lexemes: %d"
	MsgParseTree    = "PARSE TREE"
	MsgErrors       = "ERRORS"
	MsgErrorLine    = "line %d, col %d: %s"
	MsgCode         = "INTERMEDIATE CODE"
	MsgNoCode       = "<no operations>"
	MsgResult       = "RESULT"
	MsgCorrect      = "Program is correct!"
	MsgErrorCount   = "Errors found: %d"
	MsgMissing      = "<missing>"
)

var russian = map[string]string{
	msgBadFuncType:        "некорректный тип функции '%s', ожидался int или double",
	msgExpectFuncName:     "ожидалось имя функции",
	msgExpectLparen:       "ожидалась (",
	msgExpectRparen:       "ожидалась )",
	msgExpectLbrace:       "ожидалась {",
	msgExpectRbrace:       "ожидалась }",
	msgExpectSemi:         "ожидалась ;",
	msgExpectReturn:       "ожидался return",
	msgExpectAssign:       "ожидался = после идентификатора",
	msgExpectLparenAfter:  "ожидалась ( после %s",
	msgExpectRparenIn:     "ожидалась ) после выражения в %s",
	msgExpectReturnIdent:  "ожидался идентификатор после return",
	msgExpectDeclIdent:    "ожидался идентификатор в объявлении",
	msgExpectCommaIdent:   "ожидался идентификатор после ,",
	msgExpectTarget:       "ожидался идентификатор в левой части присваивания",
	msgExpectSimpleExpr:   "ожидалось простое выражение",
	msgExpectEOF:          "ожидался конец файла",
	msgMissingType:        "ожидался тип (int или double) перед '%s'",
	msgUnknownType:        "неизвестный тип '%s'",
	msgMissingComma:       "отсутствует ',' между переменными",
	msgBadSeparator:       "ожидалась ',' вместо '%s'",
	msgUnexpectedComma:    "неожиданная запятая перед идентификатором",
	msgDuplicateDecl:      "повторное объявление переменной '%s'",
	msgDeclAfterStmt:      "объявление переменных после операторов",
	msgUndeclaredTarget:   "использование необъявленной переменной '%s'",
	msgUndeclaredOperand:  "использование необъявленной переменной '%s' в выражении",
	msgExtraRparen:        "лишняя закрывающаяся скобка",
	msgUnsupportedOp:      "операция '%s' не поддерживается",
	msgUnknownFunc:        "вызов неизвестной функции '%s'",
	msgArgType:            "функция '%s' ожидает аргумент типа '%s', получен '%s'",
	msgImplicitConversion: "неявное преобразование типов в операции '%s' между %s и %s",
	msgAssignMismatch:     "несоответствие типов в присваивании '%s' (%s) = выражение (%s)",
	msgReturnUndeclared:   "переменная возврата '%s' не объявлена",
	msgReturnMismatch:     "несоответствие типа возврата '%s' с типом функции '%s'",
	msgUnexpectedToken:    "неожиданный токен '%s'",
	msgCritical:           "критическая ошибка во время разбора",
	msgTooDeep:            "слишком глубокая вложенность выражения",

	noteBadType:       "некорректный тип",
	noteUnknownType:   "неизвестный тип",
	noteUndeclared:    "необъявленная переменная",
	noteCall:          "вызов функции",
	noteUnsupported:   "неподдерживаемая операция",
	noteExtra:         "лишняя",
	noteAfterStmts:    "ошибка: после операторов",
	noteBadSeparator:  "неверный разделитель",
	noteUnexpected:    "неожиданный токен",
	noteUnexpectedSep: "неожиданная запятая",

	MsgLexemeTable:  "ХЕШ-ТАБЛИЦА",
	MsgKind:         "Тип лексемы",
	MsgLexeme:       "Лексема",
	MsgIndex:        "Индекс",
	MsgTotalLexemes: "Всего уникальных лексем: %d",
	MsgParseTree:    "ДЕРЕВО РАЗБОРА",
	MsgErrors:       "ОШИБКИ",
	MsgErrorLine:    "строка %d, позиция %d: %s",
	MsgCode:         "ПОСТФИКСНАЯ ЗАПИСЬ",
	MsgNoCode:       "<нет операций>",
	MsgResult:       "РЕЗУЛЬТАТ АНАЛИЗА",
	MsgCorrect:      "Программа корректна!",
	MsgErrorCount:   "Найдено ошибок: %d",
	MsgMissing:      "<отсутствует>",
}

// messages is the diagnostics catalog. English strings are the keys
// themselves.
var messages = func() catalog.Catalog {
	b := catalog.NewBuilder(catalog.Fallback(language.English))
	for key, ru := range russian {
		b.SetString(language.English, key, key)
		b.SetString(language.Russian, key, ru)
	}
	return b
}()

// Languages lists the languages the catalog provides.
func Languages() []language.Tag {
	return messages.Languages()
}

// NewPrinter returns a printer for diagnostics in the language best
// matching tag. Unsupported languages fall back to English.
func NewPrinter(tag language.Tag) *message.Printer {
	return message.NewPrinter(tag, message.Catalog(messages))
}
