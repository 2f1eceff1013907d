package constants

// Vai trò tài khoản
const (
	ROLE_ADMIN    = "ADMIN"
	ROLE_CUSTOMER = "CUSTOMER"
)

// Thông báo lỗi chung
const (
	ERROR_INTERNAL_ERROR       = "Lỗi hệ thống, vui lòng thử lại sau"
	ERROR_PARSE_DATA_TO_LOCALS = "Lỗi xử lý dữ liệu yêu cầu"
	DATA_INPUT_IS_NOT_NUMBER   = "Tham số phải là số"
	MISSING_LOGIN_INPUT        = "Thiếu username hoặc password"
	INVALID_USERNAME           = "Tài khoản không tồn tại"
	INVALID_PASSWORD           = "Mật khẩu không đúng"
	ACCOUNT_NOT_ACTIVE         = "Tài khoản chưa được kích hoạt"
	CAN_NOT_HASH_PASSWORD      = "Không thể mã hoá mật khẩu"
	INVALID_EMAIL              = "Email không tồn tại"
	NOT_FOUND_RECORDS          = "Không tìm thấy dữ liệu"
	ERROR_CREATE               = "Tạo mới thất bại"
	ERROR_EDIT                 = "Cập nhật thất bại"
	ERROR_DELETE               = "Xoá thất bại"
	ERROR_INPUT                = "Dữ liệu đầu vào không hợp lệ"
)

// Thông báo khách hàng
const (
	EMAIL_CUSTOMER_EXISTS = "Email đã tồn tại"
	PHONE_CUSTOMER_EXISTS = "Số điện thoại đã tồn tại"
	USERNAME_EXISTS       = "Tên đăng nhập đã được sử dụng"
)

// Thông báo game
const (
	GAME_NOT_FOUND     = "Không tìm thấy game"
	GAME_NOT_OWNED     = "Bạn chưa sở hữu game này"
	GAME_FILE_NOT_SET  = "Game chưa có file tải về"
	REVIEW_NOT_ALLOWED = "Bạn cần mua game trước khi đánh giá"
	REVIEW_EXISTS      = "Bạn đã đánh giá game này rồi"
)

// Thông báo đơn hàng / thanh toán
const (
	ORDER_NOT_FOUND        = "Không tìm thấy đơn hàng"
	ORDER_EMPTY_ITEMS      = "Đơn hàng phải có ít nhất một game hợp lệ"
	ORDER_ALREADY_PAID     = "Đơn hàng đã được thanh toán"
	PAYMENT_NOT_FOUND      = "Không tìm thấy giao dịch thanh toán"
	PAYMENT_INVALID_METHOD = "Phương thức thanh toán không được hỗ trợ"
	GATEWAY_UNAVAILABLE    = "Cổng thanh toán đang gián đoạn, vui lòng thử lại"
	INVALID_SIGNATURE      = "Invalid signature"
)
